package editionlog

import (
	"encoding/json"
	"time"

	"github.com/zhangzhonghe/apitable/pkg/wecom"
)

// Changelog is one recorded edition change of a paid corp.
type Changelog struct {
	ID         int64  `json:"id"`
	SuiteID    string `json:"suite_id"`
	PaidCorpID string `json:"paid_corp_id"`
	// EditionInfo is the JSON encoded wecom.Agent, or nil when the corp had no edition agent.
	EditionInfo json.RawMessage `json:"edition_info"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Agent decodes the stored snapshot. It returns nil, nil when no snapshot was stored.
func (c *Changelog) Agent() (*wecom.Agent, error) {
	if c == nil || len(c.EditionInfo) == 0 || string(c.EditionInfo) == "null" {
		return nil, nil
	}
	var agent wecom.Agent
	if err := json.Unmarshal(c.EditionInfo, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

func encodeAgent(agent *wecom.Agent) (json.RawMessage, error) {
	if agent == nil {
		return nil, nil
	}
	return json.Marshal(agent)
}
