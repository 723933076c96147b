package amqp

import (
	"encoding/json"
	"time"
)

const (
	OpCreate SyncOp = "create"
	OpUpdate SyncOp = "update"
	OpDelete SyncOp = "delete"
)

// SyncOp names the mutation a sync message mirrors.
type SyncOp string

// TransactionSyncMessage is a lightweight pointer to a locally persisted
// transaction that needs mirroring to the remote backend. The worker
// fetches the full row from the local store by id.
type TransactionSyncMessage struct {
	ID        string    `json:"id"`
	Op        SyncOp    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSyncMessage(id string, op SyncOp) *TransactionSyncMessage {
	return &TransactionSyncMessage{ID: id, Op: op, Timestamp: time.Now()}
}

func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
