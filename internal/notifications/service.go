package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"teatrails/internal/bookings"
	"teatrails/internal/shared/config"
	"teatrails/pkg/logger"
)

// Service publishes booking lifecycle events. It implements
// bookings.Notifier; when Kafka is disabled the service is a no-op and the
// booking flow is unaffected.
type Service struct {
	producer Producer
	logger   *logger.Logger
}

// NewService creates a notification service from config. Returns a disabled
// service when Kafka is off or the producer cannot be built; booking flow
// must not depend on the broker being up.
func NewService(cfg *config.Config) *Service {
	log := logger.GetDefault()

	if !cfg.Kafka.Enabled {
		log.Info("kafka disabled, booking notifications will not be published")
		return &Service{logger: log}
	}

	producerConfig := DefaultProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.Topic = cfg.Kafka.NotificationTopic

	producer, err := NewKafkaProducer(producerConfig)
	if err != nil {
		log.Error("failed to create kafka producer, notifications disabled", "error", err)
		return &Service{logger: log}
	}

	log.Info("kafka notification producer ready", "topic", producerConfig.Topic, "brokers", producerConfig.Brokers)
	return &Service{producer: producer, logger: log}
}

// BookingConfirmed publishes a confirmation event.
func (s *Service) BookingConfirmed(ctx context.Context, booking *bookings.Booking) {
	s.publish(ctx, EventBookingConfirmed, booking)
}

// BookingCancelled publishes a cancellation event.
func (s *Service) BookingCancelled(ctx context.Context, booking *bookings.Booking) {
	s.publish(ctx, EventBookingCancelled, booking)
}

func (s *Service) publish(ctx context.Context, eventType EventType, booking *bookings.Booking) {
	if s.producer == nil {
		return
	}

	event := &BookingEvent{
		ID:             uuid.New(),
		Type:           eventType,
		BookingRef:     booking.BookingRef,
		VenueID:        booking.VenueID.String(),
		RecipientEmail: booking.GuestEmail,
		RecipientName:  booking.GuestName,
		Date:           booking.Date,
		Time:           booking.Time,
		Adults:         booking.Adults,
		Children:       booking.Children,
		TotalCents:     booking.TotalCents,
		Currency:       string(booking.Currency),
		CreatedAt:      time.Now().UTC(),
	}
	for _, exp := range booking.Experiences {
		event.Experiences = append(event.Experiences, exp.ExperienceName)
	}

	// Publish off the request path; a slow broker must not delay the
	// booking response.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.producer.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish booking event",
				"booking_ref", event.BookingRef, "type", string(eventType), "error", err)
		}
	}()
}

// Close shuts down the underlying producer.
func (s *Service) Close() error {
	if s.producer == nil {
		return nil
	}
	return s.producer.Close()
}
