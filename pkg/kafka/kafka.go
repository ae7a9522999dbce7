package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const (
	ReservationTopic = "reservation-events"
)

const (
	EventReserved = "RESERVED"
	EventReturned = "RETURNED"
)

type Config struct {
	Addrs []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
}

// EventReservation is the payload published for every successful
// reserve/return, consumed by downstream stats tooling.
type EventReservation struct {
	Type           string    `json:"type"`
	ReservationUid string    `json:"reservationUid"`
	Login          string    `json:"login"`
	BookTitle      string    `json:"bookTitle"`
	Date           time.Time `json:"date"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}
