package activity

// Seed returns a fresh copy of the built-in Mergington High School catalog.
func Seed() Catalog {
	return Catalog{
		{
			Name:            "Tennis Club",
			Description:     "Learn tennis skills and compete in friendly matches",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 16,
			Participants:    []string{"james@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Join our competitive basketball team",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"alex@mergington.edu", "marcus@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore painting, drawing, and mixed media art",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 20,
			Participants:    []string{"sarah@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Perform in plays and theatrical productions",
			Schedule:        "Mondays and Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 25,
			Participants:    []string{"lily@mergington.edu", "noah@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Compete in debate competitions and develop argumentation skills",
			Schedule:        "Tuesdays and Fridays, 3:30 PM - 4:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"grace@mergington.edu"},
		},
		{
			Name:            "Robotics Club",
			Description:     "Build and program robots for competitions",
			Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"aiden@mergington.edu", "lucas@mergington.edu"},
		},
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
	}
}
