/**
 * @description
 * This file implements the AMQP intake path: commands published on the event
 * exchange are fed into the engine exactly like commands arriving over HTTP.
 * Results of broker-fed commands have no response channel, so non-silent
 * outputs are logged and the delivery is acknowledged.
 */

package app

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/vaultbank/transaction-core/internal/domain"
)

// commandTimeout bounds the processing of one broker-fed command.
const commandTimeout = 15 * time.Second

// CommandConsumer dispatches broker deliveries into the engine.
type CommandConsumer struct {
	service *Service
}

// NewCommandConsumer creates a consumer backed by the given engine.
func NewCommandConsumer(service *Service) *CommandConsumer {
	return &CommandConsumer{service: service}
}

// HandleMessage processes one delivery. The return value is the ack decision:
// malformed payloads are acknowledged and dropped, valid commands are always
// acknowledged once processed.
func (c *CommandConsumer) HandleMessage(body []byte) bool {
	var cmd domain.Command
	if err := json.Unmarshal(body, &cmd); err != nil {
		log.Printf("level=warn component=command-consumer msg=\"malformed command payload dropped\" err=%v", err)
		return true
	}
	if cmd.Name == "" {
		log.Printf("level=warn component=command-consumer msg=\"command without a name dropped\"")
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if result := c.service.Process(ctx, cmd); result != nil {
		out, err := json.Marshal(result)
		if err != nil {
			log.Printf("level=warn component=command-consumer msg=\"result not serializable\" command=%s err=%v", cmd.Name, err)
			return true
		}
		log.Printf("level=info component=command-consumer msg=\"command produced output\" command=%s output=%s", cmd.Name, out)
	}
	return true
}
