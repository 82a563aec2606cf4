package extract

import (
	"fmt"
	"strings"

	"github.com/acmload/clustertime/internal/milestone"
)

// Event is a single entry of the assisted-installer event log.
type Event struct {
	ClusterID string `json:"cluster_id,omitempty"`
	EventTime string `json:"event_time"`
	Message   string `json:"message"`
	Name      string `json:"name,omitempty"`
	Severity  string `json:"severity,omitempty"`
}

const (
	installingMessage = "updated status of the cluster to installing"
	finalizingMessage = "updated status of the cluster to finalizing"
	installedMessage  = "operator cvo status: available message: done applying"
)

// EventLog scans events in order. When several events match the same
// milestone, the last one wins.
func EventLog(events []Event) (Instants, error) {
	source := milestone.SourceEventLog
	result := Instants{}

	for i, event := range events {
		field := fmt.Sprintf("[%d].event_time", i)

		if event.EventTime == "" {
			return nil, missingField(source, field)
		}

		instant, err := ParseInstant(event.EventTime)
		if err != nil {
			return nil, invalidField(source, field, err)
		}

		message := strings.ToLower(event.Message)

		switch message {
		case installingMessage:
			result[milestone.ACIClusterInstalling] = instant
		case finalizingMessage:
			result[milestone.ACIClusterFinalized] = instant
		}

		if strings.Contains(message, installedMessage) {
			result[milestone.ACIClusterInstalled] = instant
		}
	}

	return result, nil
}
