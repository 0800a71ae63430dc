package consumer

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dmardones/delivery-slots/internal/models"
	"github.com/dmardones/delivery-slots/internal/repository"
)

// CatalogConsumer keeps the local region/commune reference tables in
// sync with the upstream geographic catalog. Messages are upserts keyed
// by the upstream id, so replays are harmless.
type CatalogConsumer struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogConsumer(catalogRepo repository.CatalogRepository) *CatalogConsumer {
	return &CatalogConsumer{catalogRepo: catalogRepo}
}

func (cc *CatalogConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			cc.handleMessage(msg)
		}
		log.Println("[CatalogConsumer] channel closed, stopping consumer")
	}()
}

func (cc *CatalogConsumer) handleMessage(msg amqp.Delivery) {
	ctx := context.Background()

	switch msg.RoutingKey {
	case "catalog.region":
		var region models.Region
		if err := json.Unmarshal(msg.Body, &region); err != nil {
			log.Printf("[CatalogConsumer] failed to unmarshal region: %v", err)
			msg.Nack(false, false)
			return
		}
		if err := cc.catalogRepo.UpsertRegion(ctx, &region); err != nil {
			log.Printf("[CatalogConsumer] failed to upsert region %d: %v", region.ID, err)
			msg.Nack(false, true) // requeue
			return
		}
		log.Printf("[CatalogConsumer] synced region %d: %s", region.ID, region.Name)

	case "catalog.commune":
		var commune models.Commune
		if err := json.Unmarshal(msg.Body, &commune); err != nil {
			log.Printf("[CatalogConsumer] failed to unmarshal commune: %v", err)
			msg.Nack(false, false)
			return
		}
		if err := cc.catalogRepo.UpsertCommune(ctx, &commune); err != nil {
			log.Printf("[CatalogConsumer] failed to upsert commune %d: %v", commune.ID, err)
			msg.Nack(false, true) // requeue
			return
		}
		log.Printf("[CatalogConsumer] synced commune %d: %s", commune.ID, commune.Name)

	default:
		log.Printf("[CatalogConsumer] unknown routing key %q, dropping", msg.RoutingKey)
		msg.Nack(false, false)
		return
	}

	msg.Ack(false)
}
