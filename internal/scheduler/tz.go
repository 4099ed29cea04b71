package scheduler

import (
	"fmt"
	"time"

	"postpilot/internal/slot"
	logx "postpilot/pkg/logx"
)

// TimezoneResolver turns a UTC posting time into a human-readable local
// label for one platform's configured audience zone.
type TimezoneResolver interface {
	Label(platform string, utc time.Time) string
}

type zoneResolver struct {
	def     *time.Location
	perPlat map[string]*time.Location
}

// NewZoneResolver loads the default and per-platform IANA zones. Unknown or
// empty zone names fall back to UTC with a warning; label generation itself
// never fails.
func NewZoneResolver(def string, perPlatform map[string]string, log logx.Logger) TimezoneResolver {
	r := &zoneResolver{
		def:     loadZone(def, log),
		perPlat: make(map[string]*time.Location, len(perPlatform)),
	}
	for platform, name := range perPlatform {
		r.perPlat[platform] = loadZone(name, log)
	}
	return r
}

func loadZone(name string, log logx.Logger) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		if !log.IsZero() {
			log.Warn("unknown timezone; using UTC", logx.String("zone", name), logx.Err(err))
		}
		return time.UTC
	}
	return loc
}

// Label renders e.g. "Wednesday 23:00 (Asia/Baku)".
func (r *zoneResolver) Label(platform string, utc time.Time) string {
	loc := r.def
	if l, ok := r.perPlat[platform]; ok {
		loc = l
	}
	local := utc.In(loc)
	return fmt.Sprintf("%s %02d:%02d (%s)",
		slot.WeekdayName(slot.WeekdayIndex(local)), local.Hour(), local.Minute(), loc.String())
}
