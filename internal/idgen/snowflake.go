package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var nodeMap sync.Map // map[string]*snowflake.Node

// InitNode registers a named snowflake node.
func InitNode(name string, nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("init snowflake node %s: %w", name, err)
	}
	nodeMap.Store(name, n)
	return nil
}

// NewFrom generates an id on the named node. It panics if the node was never registered.
func NewFrom(name string) uint64 {
	val, ok := nodeMap.Load(name)
	if !ok {
		panic(fmt.Sprintf("snowflake node not initialized: %s", name))
	}
	return uint64(val.(*snowflake.Node).Generate().Int64())
}

// New generates an id on the default node; used for payout rows.
func New() uint64 {
	return NewFrom("default")
}
