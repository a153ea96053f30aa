package domain

// Curated facility lists per category. Resolution iterates these in order;
// every name must also be present in the loaded catalog.
var (
	policeStations = []string{
		"Al Barsha Police Station",
		"Bur Dubai Police Station",
		"Al Muraqqabat Police Station",
		"Al Rafaa Police Station",
		"Naif Police Station",
		"Al Qusais Police Station",
		"Al Rashidiya Police Station",
		"Port Police Station",
		"Jebel Ali Police Station",
		"Hatta Police Station",
		"Al Fuqaa Police Station",
		"Nad Al Sheba Police Station",
		"Lahbab Police Station",
		"Al Khawaneej Police Station",
		"Airport Police Station",
	}

	civilDefenceStations = []string{
		"Al Karama Civil Defence Station",
		"Al Barsha Civil Defence Station",
		"Port Saeed Civil Defence Station",
		"Al Rashidiya Civil Defence Station",
		"Al Qusais Civil Defence Station",
		"Jebel Ali Civil Defence Station",
		"Hatta Civil Defence Station",
		"Al Mizhar Civil Defence Station",
		"Nad Al Sheba Civil Defence Station",
		"Al Quoz Civil Defence Station",
		"Mina Rashid Civil Defence Station",
		"Al Hamriya Civil Defence Station",
		"Umm Suqeim Civil Defence Station",
		"Al Muhaisnah Civil Defence Station",
		"Dubai Investments Park Civil Defence Station",
	}

	hospitals = []string{
		"Rashid Hospital",
		"Dubai Hospital",
		"Latifa Hospital",
		"Al Jalila Children's Specialty Hospital",
		"Mediclinic City Hospital",
		"American Hospital Dubai",
		"Saudi German Hospital Dubai",
		"NMC Royal Hospital DIP",
		"Aster Hospital Mankhool",
		"Al Zahra Hospital Dubai",
		"Emirates Hospital Jumeirah",
		"King's College Hospital Dubai",
		"Hatta Hospital",
		"Medcare Hospital Al Safa",
		"Zulekha Hospital Dubai",
	}
)

// FacilityNames returns the ordered name list for cat.
// The returned slice is a copy and may be modified by the caller.
func FacilityNames(cat Category) []string {
	var src []string
	switch cat {
	case CategoryPolice:
		src = policeStations
	case CategoryFire:
		src = civilDefenceStations
	default:
		src = hospitals
	}

	out := make([]string, len(src))
	copy(out, src)
	return out
}
