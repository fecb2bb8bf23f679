package entity

import "time"

// nowDate is swapped out in tests.
var nowDate = func() string {
	return time.Now().UTC().Format("2006-01-02")
}
