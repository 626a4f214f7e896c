package utils

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

const MiB = 1024 * 1024

// RateFormat 格式化下载速度, rate 单位为 bytes/s
func RateFormat(rate float64) string {
	if rate <= 0 {
		return "0 B/s"
	}
	return humanize.IBytes(uint64(rate)) + "/s"
}

// MiBFormat renders a byte count as mebibytes with two decimals.
func MiBFormat(size int64) string {
	return fmt.Sprintf("%.2f MiB", float64(size)/MiB)
}

// ElapsedFormat renders d as whole minutes and seconds, e.g. "2m 5s".
func ElapsedFormat(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

// ETAFormat estimates the time left for remaining bytes at rate bytes/s.
func ETAFormat(remaining int64, rate float64) string {
	if rate <= 0 {
		return "--"
	}
	if remaining <= 0 {
		return "0s"
	}
	eta := time.Duration(float64(remaining) / rate * float64(time.Second)).Round(time.Second)
	return eta.String()
}
