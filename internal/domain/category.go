package domain

// CategoryCode identifies one entry of the closed category taxonomy.
type CategoryCode string

const (
	// Photography & Videography
	CategoryCamera      CategoryCode = "camera"
	CategoryGimbal      CategoryCode = "gimbal"
	CategoryLighting    CategoryCode = "lighting"
	CategoryVideoAcc    CategoryCode = "video_acc"
	CategoryMicrophone  CategoryCode = "microphone"
	CategoryStudioEquip CategoryCode = "studio_equip"

	// Sports & Fitness
	CategoryBicycle    CategoryCode = "bicycle"
	CategorySafetyGear CategoryCode = "safety_gear"
	CategoryCricket    CategoryCode = "cricket"
	CategoryFootball   CategoryCode = "football"
	CategoryBasketball CategoryCode = "basketball"
	CategoryTennis     CategoryCode = "tennis"
	CategoryGymEquip   CategoryCode = "gym_equip"

	// Outdoor & Camping
	CategoryTent          CategoryCode = "tent"
	CategorySleepingBag   CategoryCode = "sleeping_bag"
	CategoryCampFurniture CategoryCode = "camp_furniture"
	CategoryHikingGear    CategoryCode = "hiking_gear"
	CategoryCampStove     CategoryCode = "camp_stove"
	CategoryCooler        CategoryCode = "cooler"
	CategoryBag           CategoryCode = "bag"

	// Audio & Entertainment
	CategorySpeaker     CategoryCode = "speaker"
	CategoryDJEquip     CategoryCode = "dj_equip"
	CategoryMusicalInst CategoryCode = "musical_inst"
	CategoryKaraoke     CategoryCode = "karaoke"
	CategoryPartyLights CategoryCode = "party_lights"
	CategoryProjector   CategoryCode = "projector"

	// Electronics & Gadgets
	CategoryDrone     CategoryCode = "drone"
	CategoryPowerBank CategoryCode = "power_bank"
	CategoryLaptop    CategoryCode = "laptop"

	// Event & Party
	CategoryPartyFurniture CategoryCode = "party_furniture"
	CategoryDecorations    CategoryCode = "decorations"
	CategoryGrill          CategoryCode = "grill"
	CategoryStage          CategoryCode = "stage"

	// Tools & Equipment
	CategoryPowerTool    CategoryCode = "power_tool"
	CategoryHandTool     CategoryCode = "hand_tool"
	CategoryGardenTool   CategoryCode = "garden_tool"
	CategoryLadder       CategoryCode = "ladder"
	CategoryPaintSprayer CategoryCode = "paint_sprayer"
)

// Category group display names.
const (
	GroupPhotography = "Photography & Videography"
	GroupSports      = "Sports & Fitness"
	GroupOutdoor     = "Outdoor & Camping"
	GroupAudio       = "Audio & Entertainment"
	GroupElectronics = "Electronics & Gadgets"
	GroupEvent       = "Event & Party"
	GroupTools       = "Tools & Equipment"
)

type categoryEntry struct {
	code  CategoryCode
	label string
	group string
}

// categoryTable is the static reference data behind the taxonomy. It is
// read-only after package init; there is no runtime mutation.
var categoryTable = []categoryEntry{
	{CategoryCamera, "Camera", GroupPhotography},
	{CategoryGimbal, "Gimbal", GroupPhotography},
	{CategoryLighting, "Lighting Equipment", GroupPhotography},
	{CategoryVideoAcc, "Video Accessories", GroupPhotography},
	{CategoryMicrophone, "Microphone", GroupPhotography},
	{CategoryStudioEquip, "Studio Equipment", GroupPhotography},

	{CategoryBicycle, "Bicycle", GroupSports},
	{CategorySafetyGear, "Helmets & Safety Gear", GroupSports},
	{CategoryCricket, "Cricket Equipment", GroupSports},
	{CategoryFootball, "Football & Soccer Equipment", GroupSports},
	{CategoryBasketball, "Basketball Equipment", GroupSports},
	{CategoryTennis, "Tennis Equipment", GroupSports},
	{CategoryGymEquip, "Gym Equipment", GroupSports},

	{CategoryTent, "Tent", GroupOutdoor},
	{CategorySleepingBag, "Sleeping Bag", GroupOutdoor},
	{CategoryCampFurniture, "Camping Furniture", GroupOutdoor},
	{CategoryHikingGear, "Hiking Gear", GroupOutdoor},
	{CategoryCampStove, "Portable Stove", GroupOutdoor},
	{CategoryCooler, "Cooler", GroupOutdoor},
	{CategoryBag, "Bag", GroupOutdoor},

	{CategorySpeaker, "Speaker", GroupAudio},
	{CategoryDJEquip, "DJ Equipment", GroupAudio},
	{CategoryMusicalInst, "Musical Instruments", GroupAudio},
	{CategoryKaraoke, "Karaoke Systems", GroupAudio},
	{CategoryPartyLights, "Party Lights", GroupAudio},
	{CategoryProjector, "Projector", GroupAudio},

	{CategoryDrone, "Drone", GroupElectronics},
	{CategoryPowerBank, "Power Bank", GroupElectronics},
	{CategoryLaptop, "Laptop", GroupElectronics},

	{CategoryPartyFurniture, "Tables & Chairs", GroupEvent},
	{CategoryDecorations, "Decorations", GroupEvent},
	{CategoryGrill, "Grills & BBQ Equipment", GroupEvent},
	{CategoryStage, "Portable Stage", GroupEvent},

	{CategoryPowerTool, "Power Tools", GroupTools},
	{CategoryHandTool, "Hand Tools", GroupTools},
	{CategoryGardenTool, "Gardening Equipment", GroupTools},
	{CategoryLadder, "Ladder", GroupTools},
	{CategoryPaintSprayer, "Paint Sprayer", GroupTools},
}

var (
	categoryByCode   map[CategoryCode]categoryEntry
	categoriesByGrp  map[string][]CategoryCode
	categoryGroupSeq []string
)

func init() {
	categoryByCode = make(map[CategoryCode]categoryEntry, len(categoryTable))
	categoriesByGrp = make(map[string][]CategoryCode)
	for _, e := range categoryTable {
		categoryByCode[e.code] = e
		if _, seen := categoriesByGrp[e.group]; !seen {
			categoryGroupSeq = append(categoryGroupSeq, e.group)
		}
		categoriesByGrp[e.group] = append(categoriesByGrp[e.group], e.code)
	}
}

// ValidCategory reports whether code belongs to the taxonomy.
func ValidCategory(code CategoryCode) bool {
	_, ok := categoryByCode[code]
	return ok
}

// CategoryLabel returns the human label for a code, or "" for an unknown code.
func CategoryLabel(code CategoryCode) string {
	return categoryByCode[code].label
}

// CategoryGroup returns the group a code belongs to, or "" for an unknown code.
func CategoryGroup(code CategoryCode) string {
	return categoryByCode[code].group
}

// Categories returns all category codes in taxonomy order.
func Categories() []CategoryCode {
	out := make([]CategoryCode, len(categoryTable))
	for i, e := range categoryTable {
		out[i] = e.code
	}
	return out
}

// CategoryGroups returns the group names in taxonomy order.
func CategoryGroups() []string {
	out := make([]string, len(categoryGroupSeq))
	copy(out, categoryGroupSeq)
	return out
}

// CategoriesInGroup returns the codes of one group in taxonomy order.
func CategoriesInGroup(group string) []CategoryCode {
	src := categoriesByGrp[group]
	out := make([]CategoryCode, len(src))
	copy(out, src)
	return out
}
