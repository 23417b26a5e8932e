package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adiwinata/eventdesk/internal/domain/entity"
	repo "github.com/adiwinata/eventdesk/internal/domain/repository"
	"github.com/adiwinata/eventdesk/pkg/mailer"
	mailtpl "github.com/adiwinata/eventdesk/pkg/mailer/templates"
)

// Publisher queues JSON jobs for the email worker. helpers.RabbitPublisher
// satisfies it; tests substitute an in-memory capture.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// RegistrationService is the registration consistency core: joins are
// delegated to the repository's single-transaction check-then-insert, and a
// confirmation email job is queued after a successful join. The publisher
// is optional and never fails a join.
type RegistrationService struct {
	Events       repo.EventRepository
	Participants repo.ParticipantRepository
	Pub          Publisher
	Logger       *logrus.Logger
}

func NewRegistrationService(events repo.EventRepository, participants repo.ParticipantRepository, pub Publisher, logger *logrus.Logger) *RegistrationService {
	return &RegistrationService{Events: events, Participants: participants, Pub: pub, Logger: logger}
}

type JoinInput struct {
	EventID string
	Name    string
	Email   string
	Role    string
}

// Join validates and normalizes the request, then runs the atomic
// registration. The role tag is accepted as-is: the UI offers a fixed set
// but arbitrary tags are permitted.
func (s *RegistrationService) Join(ctx context.Context, in JoinInput) (*entity.Participant, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Role = strings.TrimSpace(in.Role)
	if in.EventID == "" {
		return nil, wrapValidation("eventId is required")
	}
	if in.Name == "" {
		return nil, wrapValidation("name is required")
	}
	if in.Email == "" {
		return nil, wrapValidation("email is required")
	}
	if in.Role == "" {
		return nil, wrapValidation("role is required")
	}

	p, err := s.Participants.Join(ctx, in.EventID, &entity.Participant{
		Name:  in.Name,
		Email: in.Email,
		Role:  in.Role,
	})
	if err != nil {
		return nil, err
	}

	s.queueConfirmation(ctx, p)
	return p, nil
}

// ListParticipants returns registrations newest-first, optionally scoped to
// one event. Listing a deleted or unknown event yields an empty set, not an
// error.
func (s *RegistrationService) ListParticipants(ctx context.Context, eventID string) ([]entity.Participant, error) {
	return s.Participants.List(ctx, eventID)
}

func (s *RegistrationService) queueConfirmation(ctx context.Context, p *entity.Participant) {
	if s.Pub == nil {
		return
	}
	event, err := s.Events.GetByID(ctx, p.EventID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", p.EventID).Warn("load event for confirmation email failed")
		}
		return
	}
	job := mailer.EmailJob{
		To:       p.Email,
		Template: mailtpl.JoinConfirmation,
		Data: map[string]any{
			"Name":          p.Name,
			"EventName":     event.Name,
			"EventDate":     event.Date.UTC().Format("02 January 2006, 15:04 MST"),
			"EventLocation": event.Location,
		},
	}
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Pub.PublishJSON(c, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("participant_id", p.ID).Warn("queue confirmation email failed")
	}
}
