package protocol

// DaysTillOriginalBaseYear is the offset, in days, between year 0 and
// year 1920: 1920*365 + 1920/4 - 1920/100 + 1920/400. Game-info
// versions 1-2 encode dates as a uint16 count of days since 1920;
// versions >= 3 encode a uint32 count of days since year 0.
const DaysTillOriginalBaseYear uint32 = 701265

// GamescriptVersionNone is the sentinel gamescript_version value
// meaning "no gamescript is running", paired with an empty
// gamescript_name.
const GamescriptVersionNone uint32 = 0xFFFFFFFF

// PromoteLegacyDate converts a game-info-version 1-2 date (days since
// 1920) to the version >= 3 representation (days since year 0).
func PromoteLegacyDate(legacy uint16) uint32 {
	return DaysTillOriginalBaseYear + uint32(legacy)
}

// DemoteLegacyDate converts a days-since-year-0 date back to the
// legacy days-since-1920 uint16 representation used by game-info
// versions 1-2. The caller is responsible for ensuring date falls
// within the representable range.
func DemoteLegacyDate(date uint32) uint16 {
	return uint16(date - DaysTillOriginalBaseYear)
}
