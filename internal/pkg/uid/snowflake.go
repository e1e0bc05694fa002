package uid

import (
	"github.com/bwmarrin/snowflake"
)

// Snowflake implements NumberID using twitter snowflake identifiers. The
// generated values are time-sortable 63-bit integers, safe for BIGINT
// primary keys.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake returns a snowflake-based NumberID for the given node. node
// must be unique per running instance (0-1023).
func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: n}, nil
}

// Generate returns a new snowflake identifier.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
