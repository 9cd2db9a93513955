package events_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/streadway/amqp"
	"octofit-backend/events"
)

var _ = Describe("Change events", func() {
	at := time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC)
	event := &events.ChangeEvent{Collection: "teams", Action: events.ActionUpdate, ID: "65e4a0c2f1d2c3b4a5968778", At: at}

	Specify("routing key is collection.action", func() {
		Expect(event.RoutingKey()).To(Equal("teams.update"))
	})

	Specify("publishing carries a JSON body and a unique message id", func() {
		msg, err := events.NewPublishing(event)
		Expect(err).To(BeNil())
		Expect(msg.ContentType).To(Equal("application/json"))
		Expect(msg.DeliveryMode).To(Equal(amqp.Persistent))
		Expect(msg.Timestamp).To(Equal(at))
		_, err = uuid.Parse(msg.MessageId)
		Expect(err).To(BeNil())

		var decoded events.ChangeEvent
		Expect(json.Unmarshal(msg.Body, &decoded)).To(Succeed())
		Expect(decoded.Collection).To(Equal("teams"))
		Expect(decoded.ID).To(Equal(event.ID))
		Expect(decoded.At.Equal(at)).To(BeTrue())

		other, err := events.NewPublishing(event)
		Expect(err).To(BeNil())
		Expect(other.MessageId).NotTo(Equal(msg.MessageId))
	})

	Specify("noop publisher accepts everything", func() {
		var p events.Publisher = events.Noop{}
		Expect(p.Publish(context.Background(), event)).To(Succeed())
		Expect(p.Close()).To(Succeed())
	})
})
