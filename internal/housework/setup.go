package housework

import (
	"fmt"

	"github.com/burrowhq/burrow/internal/model"
)

const starterCoins = 100

func defaultAvatar() map[string]string {
	return map[string]string{
		"bottom": "pants",
		"eyes":   "eyes",
		"hair":   "shortHair",
		"shoes":  "shoes",
		"skin":   "skin",
		"top":    "shirt",
	}
}

type roomTemplate struct {
	displayName string
	roomType    string
	decor       map[string]string
	layout      *model.Layout
}

func roomTemplates() []roomTemplate {
	return []roomTemplate{
		{
			displayName: "Front Yard",
			roomType:    model.RoomTypeHouse,
			decor: map[string]string{
				"background": "homeScreenYard",
				"bike":       "bike",
				"home":       "house",
				"sun":        "sun",
			},
		},
		{
			displayName: "Bathroom",
			roomType:    model.RoomTypeBathroom,
			decor: map[string]string{
				"pref_floor":        "",
				"pref_toilet":       "toilet",
				"pref_toilet_paper": "toiletPaper",
				"pref_trashcan":     "trashcanSmall",
				"pref_tub":          "bathtub",
				"pref_wall":         "mainBathroom",
				"pref_wall_mirror":  "wallMirror",
			},
			layout: &model.Layout{X: 0, Y: 0, Width: 1, Height: 2},
		},
		{
			displayName: "Bedroom",
			roomType:    model.RoomTypeBedroom,
			decor: map[string]string{
				"pref_bed":        "bed",
				"pref_nightstand": "",
				"pref_rug":        "",
				"pref_side":       "",
				"pref_wall":       "basicBedroom",
				"pref_window":     "",
			},
			layout: &model.Layout{X: 1, Y: 0, Width: 4, Height: 5},
		},
	}
}

func starterTasks() map[string][]TaskInput {
	return map[string][]TaskInput{
		model.RoomTypeBedroom: {
			{Name: "Vacuum", Recurrence: model.RecurrenceDaily},
			{Name: "Make Bed", Recurrence: model.RecurrenceDaily},
			{Name: "Dust Surfaces", Recurrence: model.RecurrenceWeekly},
			{Name: "Organize Closet", Recurrence: model.RecurrenceWeekly},
		},
		model.RoomTypeBathroom: {
			{Name: "Clean Sink", Recurrence: model.RecurrenceDaily},
			{Name: "Wipe Mirror", Recurrence: model.RecurrenceWeekly},
			{Name: "Scrub Toilet", Recurrence: model.RecurrenceWeekly},
			{Name: "Empty Trash", Recurrence: model.RecurrenceDaily},
		},
	}
}

// SetupHousehold creates the user record with the default avatar and
// starting coins, then seeds the template rooms and their starter chores.
// Safe to call exactly once per user.
func (s *Service) SetupHousehold(userID, displayName string) (*model.User, error) {
	existing, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user %s already set up", ErrInvalidInput, userID)
	}

	user, err := s.users.Create(userID, displayName, defaultAvatar(), starterCoins)
	if err != nil {
		return nil, err
	}

	for _, tmpl := range roomTemplates() {
		room, err := s.rooms.Create(user.ID, tmpl.displayName, tmpl.roomType, tmpl.decor, tmpl.layout, 0)
		if err != nil {
			return nil, fmt.Errorf("seed room %q: %w", tmpl.displayName, err)
		}
		for _, in := range starterTasks()[tmpl.roomType] {
			if _, err := s.tasks.Create(user.ID, room.ID, in.Name, in.Recurrence, in.TimerMinutes, in.TimerEnabled); err != nil {
				return nil, fmt.Errorf("seed task %q: %w", in.Name, err)
			}
		}
	}

	s.logger.Info("household set up", "user_id", user.ID)
	return user, nil
}
