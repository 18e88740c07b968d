package utils

import (
	"log"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

// GetCPUUsage samples total CPU utilization over a one second window and
// returns it as a percentage, for the health endpoint.
func GetCPUUsage() float64 {
	pct, err := cpu.Percent(time.Second, false)
	if err != nil {
		log.Printf("cpu sample failed: %v", err)
		return 0
	}
	if len(pct) == 0 {
		return 0
	}
	return pct[0]
}
