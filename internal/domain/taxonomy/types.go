package taxonomy

import "time"

var QueryTimeoutDuration = time.Second * 5

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// DefaultCategories and DefaultTags are installed by the seed command.
var DefaultCategories = []string{
	"Historic Castles & Palaces",
	"Highland Landscapes",
	"Coastal & Islands",
	"Cities & Urban",
	"Lochs & Waterways",
	"Cultural Heritage",
	"Natural Parks & Gardens",
	"Whisky Distilleries",
	"Historic Sites",
	"Traditional Experiences",
}

var DefaultTags = []string{
	// accommodation
	"Hotels", "Resorts", "Hostels", "Camping", "Glamping",
	// experience
	"Family-Friendly", "Romantic", "Solo Travel", "Group Tours",
	"Off the Beaten Path", "Hidden Gems", "Must-See", "Local Experience",
	// activities
	"Surfing", "Skiing", "Snorkeling", "Diving", "Cycling",
	"Rock Climbing", "Yoga", "Meditation", "Cooking Classes",
	// features
	"Pet-Friendly", "Wheelchair Accessible", "Free WiFi", "Pool",
	"Ocean View", "Mountain View", "City View",
	// atmosphere
	"Peaceful", "Bustling", "Scenic", "Historic", "Modern",
	"Traditional", "Trendy", "Authentic",
	// time
	"Weekend Getaway", "Day Trip", "Long Stay", "Seasonal",
	// special interest
	"Photography Spots", "Foodie Paradise", "Shopping Haven",
	"Architecture", "Art Scene", "Music Scene", "Night Markets",
	// environment
	"Beach", "Mountains", "Desert", "Jungle", "Islands",
	"Lakes", "Rivers", "National Parks", "UNESCO Sites",
	// climate
	"Tropical", "Mediterranean", "Alpine", "Desert Climate",
	// budget
	"Budget", "Mid-Range", "Luxury", "All-Inclusive",
}
