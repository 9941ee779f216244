package dto

// SysConfigEntry is one sys_config row as cached in Redis.
type SysConfigEntry struct {
	ID     int    `json:"id"`
	Key    string `json:"key"`
	Value  string `json:"value"`
	Type   string `json:"type,omitempty"`
	Remark string `json:"remark,omitempty"`
}

// Set reports whether the row existed.
func (e SysConfigEntry) Set() bool {
	return e.ID > 0
}
