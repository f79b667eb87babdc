package metadata

import "fmt"

type BatchStatus string

const (
	BatchQueued     BatchStatus = "QUEUED" // vocabulary only, batches start processing immediately
	BatchProcessing BatchStatus = "PROCESSING"
	BatchCompleted  BatchStatus = "COMPLETED" // completion removes the batch instead
)

func NewBatchStatus(value string) (BatchStatus, error) {
	status := BatchStatus(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid batch status: %s", value)
	}
	return status, nil
}

func (s BatchStatus) isValid() bool {
	switch s {
	case BatchQueued, BatchProcessing, BatchCompleted:
		return true
	default:
		return false
	}
}

func (s BatchStatus) String() string {
	return string(s)
}
