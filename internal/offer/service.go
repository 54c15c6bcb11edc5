package offer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"bazarlyq-main/internal/kafka"
	myErr "bazarlyq-main/internal/types/errors"
	typesOffer "bazarlyq-main/internal/types/offer"
)

// OfferService оборачивает репозиторий: single-flight на сохранение
// и события для поискового индекса. Повторный сабмит того же оффера,
// пока первый не завершился, отклоняется.
type OfferService struct {
	Repo     OfferRepo
	Producer kafka.EventProducer
	Logger   *zap.SugaredLogger

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func NewOfferService(repo OfferRepo, producer kafka.EventProducer, logger *zap.SugaredLogger) *OfferService {
	return &OfferService{
		Repo:     repo,
		Producer: producer,
		Logger:   logger,
		inFlight: make(map[int64]struct{}),
	}
}

func (s *OfferService) Generate(ctx context.Context, productID int64, profileID string) (*Offer, error) {
	o, err := s.Repo.GenerateForm(productID, profileID)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, kafka.Event{
		ProfileID: profileID,
		Type:      kafka.EventTypeOfferCreated,
		OfferID:   o.OfferID,
		ProductID: o.ProductID,
	})

	return o, nil
}

// Submit сохраняет оффер. На один offerId допускается один сабмит
// одновременно, второй получает ErrSubmitInFlight
func (s *OfferService) Submit(ctx context.Context, o Offer) (*Offer, error) {
	if o.OfferID == 0 {
		return nil, myErr.ErrBadID
	}

	if !s.begin(o.OfferID) {
		return nil, myErr.ErrSubmitInFlight
	}
	defer s.end(o.OfferID)

	updated, err := s.Repo.Update(o)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, kafka.Event{
		ProfileID: updated.ProfileID,
		Type:      kafka.EventTypeOfferUpdated,
		OfferID:   updated.OfferID,
		ProductID: updated.ProductID,
	})

	return updated, nil
}

func (s *OfferService) Get(ctx context.Context, id int64, viewerID string) (*Offer, error) {
	o, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, kafka.Event{
		ProfileID: viewerID,
		Type:      kafka.EventTypeOfferViewed,
		OfferID:   o.OfferID,
		ProductID: o.ProductID,
	})

	return o, nil
}

func (s *OfferService) List(
	ctx context.Context,
	q typesOffer.ListQuery,
	filter typesOffer.FilterRequest,
) (*typesOffer.Page[Offer], error) {
	page, err := s.Repo.ListFiltered(q, filter)
	if err != nil {
		return nil, err
	}

	cities := make([]string, 0, len(filter.Cities))
	for _, c := range filter.Cities {
		cities = append(cities, c.CityCode)
	}
	s.emit(ctx, kafka.Event{
		ProfileID: q.ProfileID,
		Type:      kafka.EventTypeSearch,
		ProductID: q.ProductID,
		CityCodes: cities,
	})

	return page, nil
}

func (s *OfferService) QueryBuilder(productID int64) (*typesOffer.FilterRequest, error) {
	return s.Repo.QueryBuilder(productID)
}

func (s *OfferService) begin(offerID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[offerID]; busy {
		return false
	}
	s.inFlight[offerID] = struct{}{}
	return true
}

func (s *OfferService) end(offerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, offerID)
}

// emit шлет событие в брокер; потеря события не ломает запрос
func (s *OfferService) emit(ctx context.Context, event kafka.Event) {
	if s.Producer == nil {
		return
	}
	event.Timestamp = time.Now()
	if err := s.Producer.SendEvent(ctx, event); err != nil {
		s.Logger.Warnf("Failed to send %s event: %v", event.Type, err)
	}
}
