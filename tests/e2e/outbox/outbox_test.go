//go:build e2e

package outbox_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/user"
	resdto "storefront/internal/handler/dto/response"
	"storefront/tests/common/authtest"
	"storefront/tests/common/builder"
	"storefront/tests/common/dbtest"
	"storefront/tests/common/httptest"
	"storefront/tests/e2e"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OutboxSuite struct {
	e2e.SharedSuite
	conn       *amqp.Connection
	channel    *amqp.Channel
	deliveries <-chan amqp.Delivery
}

func TestOutboxSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, &OutboxSuite{SharedSuite: e2e.SharedSuite{WithBroker: true}})
}

func (s *OutboxSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	t := s.T()

	var err error
	s.conn, err = amqp.Dial(s.Config.AMQP.URL)
	require.NoError(t, err)
	s.channel, err = s.conn.Channel()
	require.NoError(t, err)

	require.NoError(t, s.channel.ExchangeDeclare(s.Config.AMQP.OrderExchange, "topic", true, false, false, false, nil))
	q, err := s.channel.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, s.channel.QueueBind(q.Name, "order.#", s.Config.AMQP.OrderExchange, false, nil))

	s.deliveries, err = s.channel.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)
}

func (s *OutboxSuite) TearDownSuite() {
	if s.channel != nil {
		_ = s.channel.Close()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

func (s *OutboxSuite) next(routingKey string) amqp.Delivery {
	s.T().Helper()
	timeout := time.After(10 * time.Second)
	for {
		select {
		case d := <-s.deliveries:
			if d.RoutingKey == routingKey {
				return d
			}
		case <-timeout:
			s.T().Fatalf("no %s message within 10s", routingKey)
			return amqp.Delivery{}
		}
	}
}

func (s *OutboxSuite) TestOrderEventsReachTheBroker() {
	s.Run("Placed and cancelled orders are published once each", func() {
		t := s.T()
		_, token := authtest.CreateAndAuthenticate(t, s.DB, s.Config.JWT, "events@example.com", user.RoleCustomer)
		dbtest.CreateTestProduct(t, s.DB, dbtest.ProductSeed{Title: "Desk Lamp", PriceCents: 10000, Quantity: 5})

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/orders", builder.NewOrderBuilder().BuildPlaceRequestDTO(), token)
		var created resdto.OrderResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		msg := s.next("order.created")
		assert.Equal(t, "application/json", msg.ContentType)
		assert.NotEmpty(t, msg.MessageId)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(msg.Body, &payload))
		assert.Equal(t, created.ID, payload["order_id"])

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/orders/"+created.ID, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		s.next("order.cancelled")

		assert.Eventually(t, func() bool {
			var pending int
			err := s.DB.QueryRow(context.Background(),
				"SELECT count(*) FROM outbox_events WHERE status <> 'sent'").Scan(&pending)
			return err == nil && pending == 0
		}, 5*time.Second, 100*time.Millisecond)
	})
}
