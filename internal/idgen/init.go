package idgen

import (
	"log"
)

// Init registers the default node. Each instance needs a distinct nodeID.
func Init(nodeID int64) {
	if nodeID < 0 || nodeID > 1023 {
		log.Fatalf("[IDGen] invalid snowflake node id: %d", nodeID)
	}
	if err := InitNode("default", nodeID); err != nil {
		log.Fatalf("[IDGen] InitNode failed: %v", err)
	}
	log.Printf("[IDGen] snowflake node initialized: nodeID=%d", nodeID)
}
