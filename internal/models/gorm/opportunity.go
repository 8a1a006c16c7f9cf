package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Opportunity struct {
	ID           uint       `gorm:"column:id;primaryKey" json:"id"`
	Title        string     `gorm:"column:title;uniqueIndex;not null" json:"title"`
	Mode         string     `gorm:"column:mode" json:"mode"`
	Time         string     `gorm:"column:time" json:"time"`
	Duration     string     `gorm:"column:duration" json:"duration"`
	Location     string     `gorm:"column:location" json:"location"`
	Description  string     `gorm:"column:description" json:"description"`
	Requirements string     `gorm:"column:requirements" json:"requirements"`
	Tags         Tags       `gorm:"column:tags;type:text" json:"tags"`
	Image        string     `gorm:"column:image" json:"image"`
	Closed       bool       `gorm:"column:closed;default:false;index" json:"closed"`
	ClosedDate   *time.Time `gorm:"column:closed_date" json:"closed_date,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Opportunity) TableName() string {
	return "opportunities"
}

// Tags is the ordered label list of an opportunity, stored as JSON text.
type Tags []string

// Scan implements sql.Scanner. Undecodable tags become an empty list.
func (t *Tags) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	}

	decoded := Tags{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			decoded = Tags{}
		}
	}
	*t = decoded
	return nil
}

// Value implements driver.Valuer
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("tags: failed to encode: %w", err)
	}
	return string(data), nil
}

// ParseTags decodes a JSON tag array, falling back to a comma separated list.
func ParseTags(raw string) Tags {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Tags{}
	}
	var tags Tags
	if err := json.Unmarshal([]byte(raw), &tags); err == nil {
		return tags
	}
	tags = Tags{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// NormalizeTitle folds case and whitespace so titles can be compared.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
