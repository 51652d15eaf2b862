package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/pkg/logger"
)

// ActivityDependencies is the registry surface used by the activity routes.
type ActivityDependencies interface {
	ListActivities(ctx context.Context) (activity.Catalog, error)
	SignUp(ctx context.Context, name, email string) (activity.Activity, error)
	Unregister(ctx context.Context, name, email string) (activity.Activity, error)
}

// pathActivityName is the route wildcard holding the activity name.
const pathActivityName = "activity_name"

// ActivitiesHandler serves the activity catalog and registration routes.
type ActivitiesHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps Dependencies, l logger.Logger) *ActivitiesHandler {
	if l == nil {
		l = logger.Nop()
	}
	return &ActivitiesHandler{deps: deps, logger: l}
}

// HandleList handles GET /activities requests.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list"
	if err := h.ready(op); err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.deps.ListActivities(r.Context())
	if err != nil {
		h.fail(w, r, WrapKind(op, ErrInternal, err))
		return
	}
	writeCatalog(w, c)
}

// HandleSignup handles POST /activities/{activity_name}/signup?email= requests.
func (h *ActivitiesHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	const op = "api.signup"
	name, email, err := h.params(op, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.deps.SignUp(r.Context(), name, email); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("%s signed up for %s", email, name),
	})
}

// HandleUnregister handles POST /activities/{activity_name}/unregister?email= requests.
func (h *ActivitiesHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	const op = "api.unregister"
	name, email, err := h.params(op, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.deps.Unregister(r.Context(), name, email); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("%s unregistered from %s", email, name),
	})
}

func (h *ActivitiesHandler) ready(op string) error {
	if h.deps == nil || !h.deps.Ready() {
		return NewKind(op, ErrUnavailable)
	}
	return nil
}

// params extracts the decoded activity name and the email query parameter.
// The email is passed through unchanged once it is known to be non-blank.
func (h *ActivitiesHandler) params(op string, r *http.Request) (string, string, error) {
	if err := h.ready(op); err != nil {
		return "", "", err
	}
	name := r.PathValue(pathActivityName)
	if name == "" {
		return "", "", WrapKind(op, ErrBadRequest, fmt.Errorf("activity name is required"))
	}
	email := r.URL.Query().Get("email")
	if strings.TrimSpace(email) == "" {
		return "", "", WrapKind(op, ErrBadRequest, fmt.Errorf("email query parameter is required"))
	}
	return name, email, nil
}

func (h *ActivitiesHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= statusInternalError && status != statusServiceUnavailable {
		h.logger.Error(r.Context(), "request failed",
			logger.String("request_id", RequestIDFromContext(r.Context())),
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
	}
	writeError(w, status, code, err)
}
