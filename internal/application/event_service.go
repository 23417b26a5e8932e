package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/adiwinata/eventdesk/internal/domain/entity"
	repo "github.com/adiwinata/eventdesk/internal/domain/repository"
)

// EventService owns event CRUD plus best-effort search indexing. The
// Elasticsearch client is optional; when nil every indexing call is a no-op
// and Search returns an empty result.
type EventService struct {
	Repo         repo.EventRepository
	Participants repo.ParticipantRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESIndex      string

	// StrictCapacity rejects updates that lower capacity below the current
	// participant count. Off by default: capping future joins without
	// evicting existing participants is a legitimate admin move.
	StrictCapacity bool
}

func NewEventService(r repo.EventRepository, participants repo.ParticipantRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, strictCapacity bool) *EventService {
	return &EventService{
		Repo:           r,
		Participants:   participants,
		Logger:         logger,
		ES:             es,
		ESIndex:        esIndex,
		StrictCapacity: strictCapacity,
	}
}

type EventInput struct {
	Name        string
	Date        time.Time
	Location    string
	Description string
	Capacity    int
}

func (in *EventInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	if in.Name == "" {
		return wrapValidation("name is required")
	}
	if in.Date.IsZero() {
		return wrapValidation("date is required")
	}
	if in.Location == "" {
		return wrapValidation("location is required")
	}
	if in.Capacity <= 0 {
		return wrapValidation("capacity must be a positive integer")
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, in EventInput) (*entity.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	e := &entity.Event{
		Name:        in.Name,
		Date:        in.Date,
		Location:    in.Location,
		Description: in.Description,
		Capacity:    in.Capacity,
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, err
	}
	s.indexEvent(ctx, e)
	return e, nil
}

func (s *EventService) List(ctx context.Context) ([]entity.Event, error) {
	return s.Repo.List(ctx)
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *EventService) Update(ctx context.Context, id string, in EventInput) (*entity.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.StrictCapacity {
		count, cErr := s.Participants.CountByEvent(ctx, id)
		if cErr != nil {
			return nil, cErr
		}
		if in.Capacity < count {
			return nil, ErrCapacityBelowCount
		}
	}
	e.Name = in.Name
	e.Date = in.Date
	e.Location = in.Location
	e.Description = in.Description
	e.Capacity = in.Capacity
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	s.indexEvent(ctx, e)
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.deleteEventDoc(ctx, id)
	return nil
}

func (s *EventService) indexEvent(ctx context.Context, e *entity.Event) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          e.ID,
		"name":        e.Name,
		"date":        e.Date.Format(time.RFC3339Nano),
		"location":    e.Location,
		"description": e.Description,
		"capacity":    e.Capacity,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: e.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", e.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("event_id", e.ID).Warn("es index response error")
	}
}

func (s *EventService) deleteEventDoc(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query on name, location, and description.
func (s *EventService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "location", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
