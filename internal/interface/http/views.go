package handlers

import (
	"time"

	"github.com/adiwinata/eventdesk/internal/domain/entity"
)

// View types decouple the wire format from the domain entities. Passwords
// never appear here.

type userView struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName,omitempty"`
	Email       string    `json:"email,omitempty"`
	Role1       string    `json:"role1,omitempty"`
	Role2       string    `json:"role2,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		Role1:       u.Role1,
		Role2:       u.Role2,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// toUserIDView is the projection non-admin callers receive from the user
// listing.
func toUserIDView(u *entity.User) userView {
	return userView{ID: u.ID, CreatedAt: u.CreatedAt}
}

type eventView struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Date             time.Time `json:"date"`
	Location         string    `json:"location"`
	Description      string    `json:"description,omitempty"`
	Capacity         int       `json:"capacity"`
	ParticipantCount int       `json:"participantCount"`
	Remaining        int       `json:"remaining"`
	IsFull           bool      `json:"isFull"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toEventView(e *entity.Event) eventView {
	return eventView{
		ID:               e.ID,
		Name:             e.Name,
		Date:             e.Date,
		Location:         e.Location,
		Description:      e.Description,
		Capacity:         e.Capacity,
		ParticipantCount: e.ParticipantCount,
		Remaining:        e.Remaining(),
		IsFull:           e.IsFull(),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

type eventSummaryView struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
}

type participantView struct {
	ID        string            `json:"id"`
	EventID   string            `json:"eventId"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      string            `json:"role"`
	CreatedAt time.Time         `json:"createdAt"`
	Event     *eventSummaryView `json:"event,omitempty"`
}

func toParticipantView(p *entity.Participant) participantView {
	v := participantView{
		ID:        p.ID,
		EventID:   p.EventID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
	}
	if p.Event != nil {
		v.Event = &eventSummaryView{
			ID:       p.Event.ID,
			Name:     p.Event.Name,
			Date:     p.Event.Date,
			Location: p.Event.Location,
		}
	}
	return v
}
