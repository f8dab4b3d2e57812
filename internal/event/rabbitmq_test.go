package event

import (
	"testing"

	"agrivision-service/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAMQPURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.RabbitMQConfig
		wantPort int
	}{
		{"plain", config.RabbitMQConfig{Username: "admin", Password: "admin", Host: "localhost", Port: "5672"}, 5672},
		{"reserved characters in password", config.RabbitMQConfig{Username: "agri", Password: "p@ss/w:rd#1", Host: "broker.internal", Port: "5673"}, 5673},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := amqp.ParseURI(amqpURL(tt.cfg))
			require.NoError(t, err)

			assert.Equal(t, "amqp", uri.Scheme)
			assert.Equal(t, tt.cfg.Username, uri.Username)
			assert.Equal(t, tt.cfg.Password, uri.Password)
			assert.Equal(t, tt.cfg.Host, uri.Host)
			assert.Equal(t, tt.wantPort, uri.Port)
			assert.Equal(t, "/", uri.Vhost)
		})
	}
}
