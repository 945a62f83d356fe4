package zonebuilder

// Schedule:Compact bodies per room type. Each entry is one field after the
// schedule type limits; names are filled in by the zone writer.

var occupancyDefault = []string{
	"Through: 12/31",
	"For: Weekdays",
	"Until: 6:00,1.0",
	"Until: 8:00,1.0",
	"Until: 17:00,0.2",
	"Until: 23:00,1.0",
	"Until: 24:00,1.0",
	"For: Weekends Holidays",
	"Until: 23:00,0.9",
	"Until: 24:00,1.0",
}

var occupancyBedroom = []string{
	"Through: 12/31",
	"For: AllDays",
	"Until: 7:00,1.0",
	"Until: 8:00,0.8",
	"Until: 21:00,0.1",
	"Until: 23:00,0.5",
	"Until: 24:00,1.0",
}

var occupancyBathroom = []string{
	"Through: 12/31",
	"For: Weekdays",
	"Until: 6:00,0.0",
	"Until: 8:00,0.8",
	"Until: 18:00,0.1",
	"Until: 22:00,0.6",
	"Until: 24:00,0.1",
	"For: Weekends Holidays",
	"Until: 8:00,0.0",
	"Until: 10:00,0.6",
	"Until: 22:00,0.2",
	"Until: 23:00,0.6",
	"Until: 24:00,0.1",
}

var activity = []string{
	"Through: 12/31",
	"For: AllDays",
	"Until: 6:00,70",
	"Until: 8:00,120",
	"Until: 18:00,100",
	"Until: 22:00,110",
	"Until: 24:00,70",
}

var lightingDefault = []string{
	"Through: 12/31",
	"For: Weekdays",
	"Until: 6:00,0.1",
	"Until: 8:00,0.8",
	"Until: 17:00,0.1",
	"Until: 22:00,1.0",
	"Until: 24:00,0.2",
	"For: Weekends Holidays",
	"Until: 9:00,0.1",
	"Until: 22:00,0.8",
	"Until: 24:00,0.2",
}

var lightingBedroom = []string{
	"Through: 12/31",
	"For: Weekdays",
	"Until: 6:00,0.0",
	"Until: 7:00,0.3",
	"Until: 21:00,0.0",
	"Until: 23:00,0.4",
	"Until: 24:00,0.0",
	"For: Weekends Holidays",
	"Until: 8:00,0.0",
	"Until: 9:00,0.2",
	"Until: 22:00,0.0",
	"Until: 23:00,0.3",
	"Until: 24:00,0.0",
}

var equipmentDefault = []string{
	"Through: 12/31",
	"For: Weekdays",
	"Until: 7:00,0.1",
	"Until: 8:00,0.5",
	"Until: 17:00,0.2",
	"Until: 22:00,0.8",
	"Until: 24:00,0.2",
	"For: Weekends Holidays",
	"Until: 9:00,0.1",
	"Until: 22:00,0.6",
	"Until: 24:00,0.2",
}

var equipmentKitchen = []string{
	"Through: 12/31",
	"For: Weekdays",
	"Until: 6:00,0.3",
	"Until: 8:00,1.0",
	"Until: 12:00,0.4",
	"Until: 13:00,0.8",
	"Until: 17:00,0.3",
	"Until: 20:00,1.0",
	"Until: 24:00,0.3",
	"For: Weekends Holidays",
	"Until: 9:00,0.3",
	"Until: 10:00,0.8",
	"Until: 13:00,0.4",
	"Until: 14:00,0.8",
	"Until: 19:00,0.3",
	"Until: 20:00,1.0",
	"Until: 24:00,0.3",
}

// schedule is one Schedule:Compact object.
type schedule struct {
	Name   string
	Limits string
	Fields []string
}

func roomSchedules(name, roomType string) []schedule {
	occupancy := occupancyDefault
	switch roomType {
	case RoomSchlafzimmer:
		occupancy = occupancyBedroom
	case RoomBadezimmer:
		occupancy = occupancyBathroom
	}

	lighting := lightingDefault
	if roomType == RoomSchlafzimmer {
		lighting = lightingBedroom
	}

	equipment := equipmentDefault
	if roomType == RoomKueche {
		equipment = equipmentKitchen
	}

	return []schedule{
		{Name: name + "_Anwesenheit", Limits: "Fraction", Fields: occupancy},
		{Name: name + "_Aktivitaet", Limits: "Activity Level", Fields: activity},
		{Name: name + "_Beleuchtung", Limits: "Fraction", Fields: lighting},
		{Name: name + "_Geraete", Limits: "Fraction", Fields: equipment},
	}
}
