package rediskey

import "bloomfundr-settlement/internal/config"

// SysConfigKey is the hash holding cached sys_config rows, one field per key.
func SysConfigKey() string {
	return config.C.Project.Name + ":system:config"
}
