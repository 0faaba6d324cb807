package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/sharedkernel/shared/domain"
)

type invoiceIssued struct {
	domain.BaseEvent
	Amount int `json:"amount"`
}

func TestFromDomainEvent(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	aggID := domain.NewDomainEntityId()
	evtID := domain.NewDomainEntityId()
	evt := invoiceIssued{
		BaseEvent: domain.NewBaseEventWithID(evtID, aggID, "Invoice", "InvoiceIssued", at),
		Amount:    120,
	}

	ie, err := FromDomainEvent(evt)

	require.NoError(t, err)
	assert.Equal(t, evtID.String(), ie.ID)
	assert.Equal(t, "InvoiceIssued", ie.Type)
	assert.Equal(t, aggID.String(), ie.PartitionKey())
	assert.Equal(t, "Invoice", ie.AggregateType)
	assert.Equal(t, at, ie.Timestamp)
	assert.JSONEq(t, `{"amount":120}`, string(ie.Data))

	raw, err := json.Marshal(ie)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"eventId":"`+evtID.String()+`"`)
}
