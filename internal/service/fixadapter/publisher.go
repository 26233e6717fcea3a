package fixadapter

import (
	"errors"
	"time"

	"github.com/kgsd/fx-md-adapter/internal/constant"
	"github.com/kgsd/fx-md-adapter/internal/entity"
	"github.com/kgsd/fx-md-adapter/internal/util"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// RowBatchEvent is the fan-out payload for one decoded row batch.
type RowBatchEvent struct {
	Table   string       `json:"table"`
	Columns []string     `json:"columns"`
	Rows    []entity.Row `json:"rows"`
}

// RowPublisher fans decoded row batches out to downstream consumers over
// JetStream, in addition to the primary sink write.
type RowPublisher struct {
	js nats.JetStreamContext
}

func NewRowPublisher(js nats.JetStreamContext) *RowPublisher {
	return &RowPublisher{js: js}
}

// EnsureStream creates or updates the quote stream. Called once at startup.
func (p *RowPublisher) EnsureStream() error {
	streamConfig := &nats.StreamConfig{
		Name:      constant.QuoteStreamName,
		Subjects:  []string{constant.QuoteStreamSubjectAll},
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
		MaxAge:    5 * time.Minute,
		Replicas:  1,
	}

	stream, err := p.js.StreamInfo(constant.QuoteStreamName)
	if err != nil && !errors.Is(err, nats.ErrStreamNotFound) {
		logrus.Error(err)
		return err
	}

	if stream == nil {
		logrus.Infof("creating stream: %s", constant.QuoteStreamName)
		_, err = p.js.AddStream(streamConfig)
		return err
	}

	_, err = p.js.UpdateStream(streamConfig)
	if err != nil {
		logrus.Error(err)
		return err
	}

	logrus.Infof("stream %s is ready", constant.QuoteStreamName)

	return nil
}

func (p *RowPublisher) PublishBatch(batch *entity.RowBatch) error {
	return util.PublishEvent(p.js, constant.QuoteStreamSubjectRows, RowBatchEvent{
		Table:   batch.Table,
		Columns: batch.Columns,
		Rows:    batch.Rows,
	})
}
