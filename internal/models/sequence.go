package models

// SequenceCounter is one named counter row. Values are issued through a
// single-statement upsert so concurrent callers never see the same value.
type SequenceCounter struct {
	Name  string `gorm:"primaryKey" json:"name"`
	Value uint   `gorm:"not null" json:"value"`
}

// TableName keeps the table name aligned with the raw upsert statement.
func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
