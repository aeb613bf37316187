package store

import (
	"greenspend/carbonstmt/internal/models"
)

// DefaultRules returns the built-in keyword rule sets, ordered by category
// priority. Travel-booking keywords live under transport on purpose and are
// excluded from the recreation list, so a booking merchant can never be a
// candidate for both.
func DefaultRules() []models.CategoryRule {
	return []models.CategoryRule{
		{
			Category: models.CategoryFoodAndGroceries,
			Keywords: []string{
				"swiggy", "zomato", "foodpanda", "ubereats", "dunzo",
				"bigbasket", "grofers", "amazon fresh", "flipkart grocery",
				"dmart", "reliance fresh", "spencer", "grocery",
				"supermarket", "kirana", "vegetables", "fruits", "restaurant",
				"food delivery", "online food", "cafe", "bakery", "meat",
				"chicken", "fish", "dairy", "milk", "bread",
				"bbnow", "bbdaily", "big basket", "bb now", "bb daily",
				"dominos", "pizza hut", "kfc", "mcdonald", "burger king",
				"akshayakalpa", "licious", "freshmenu", "faasos",
				"super market", "provisions", "general store",
			},
		},
		{
			Category: models.CategoryHousingUtilities,
			Keywords: []string{
				"electricity", "water", "lpg", "utility", "power",
				"bescom", "mseb", "tneb", "bses", "tata power", "adani",
				"rent", "maintenance", "society", "apartment", "flat",
				"housing", "property tax", "municipal",
			},
		},
		{
			Category: models.CategoryTransport,
			Keywords: []string{
				"uber", "ola", "rapido", "auto", "taxi", "cab", "ride",
				"indian oil", "bharat petroleum", "hindustan petroleum", "shell",
				"essar", "fuel", "petrol", "diesel", "cng", "gas station",
				"metro", "bus", "railway", "irctc", "bmtc", "dtc",
				"public transport", "train", "local train", "parking", "toll",
				"fastag",
				// Travel booking platforms categorize as transport, not leisure.
				"makemytrip", "goibibo", "cleartrip", "yatra", "booking.com",
				"oyo", "hotel", "airbnb", "travel", "flight", "airline",
				"airways", "indigo", "spicejet", "air india", "vistara",
			},
		},
		{
			Category: models.CategoryClothing,
			Keywords: []string{
				"myntra", "ajio", "max fashion", "lifestyle", "pantaloons",
				"westside", "clothing", "fashion", "apparel", "zara", "h&m",
				"shoes", "footwear", "bata", "nike", "adidas", "puma",
				"garments", "textile", "fabrics",
			},
		},
		{
			Category: models.CategoryHouseholdGoods,
			Keywords: []string{
				"amazon", "flipkart", "croma", "reliance digital", "vijay sales",
				"electronics", "mobile", "laptop", "tv", "appliance",
				"furniture", "ikea", "pepperfry", "urban ladder", "home decor",
				"kitchen", "utensils", "bedding",
			},
		},
		{
			Category: models.CategoryHealthcare,
			Keywords: []string{
				"apollo", "fortis", "max healthcare", "hospital", "clinic",
				"pharmacy", "medicine", "doctor", "medical", "diagnostic",
				"lab", "pathology", "dental", "optical",
				"salon", "spa", "beauty", "cosmetics", "nykaa", "personal care",
				"unisex salon", "hair salon", "hair studio",
				"barber", "parlour", "parlor", "grooming", "haircut",
				"urban company", "housejoy",
				"medplus", "netmeds", "pharmeasy",
			},
		},
		{
			Category: models.CategoryEducationComms,
			Keywords: []string{
				"school", "college", "university", "course", "tuition",
				"education", "fees", "books", "stationery", "udemy", "coursera",
				"airtel", "jio", "vodafone", "bsnl", "internet",
				"mobile recharge", "broadband", "wifi", "telephone",
			},
		},
		{
			Category: models.CategoryRecreationLeisure,
			Keywords: []string{
				// Entertainment and leisure only; travel booking is transport.
				"pvr", "inox", "cinepolis", "movie", "cinema",
				"netflix", "amazon prime", "hotstar", "disney", "sony liv",
				"spotify", "gaana", "youtube premium", "entertainment",
				"gaming", "steam", "playstation", "xbox",
				"sports", "gym", "fitness", "cult fit",
				"holiday", "tourism", "amusement park", "zoo", "museum",
			},
		},
		{
			Category: models.CategoryFinancialInsurance,
			Keywords: []string{
				"insurance", "lic", "hdfc life", "icici prudential",
				"mutual fund", "sip", "investment", "loan", "emi",
				"credit card", "bank charges", "demat", "trading", "zerodha",
				"groww", "upstox",
			},
		},
		{
			Category: models.CategoryMiscellaneous,
			Keywords: []string{
				"atm", "cash", "withdrawal", "transfer", "upi", "neft", "imps",
				"rtgs", "cheque", "demand draft",
			},
		},
	}
}

// DefaultFactors returns the built-in emission factor table, in kg CO2e per
// 1000 currency units spent.
func DefaultFactors() []models.EmissionFactor {
	return []models.EmissionFactor{
		{
			Category:  models.CategoryFoodAndGroceries,
			MinFactor: 7, MaxFactor: 15,
			Source: "NSSO-linked supply chain studies; household footprint",
			Notes:  "Varies by diet (higher for meat, lower for cereals/veg)",
		},
		{
			Category:  models.CategoryHousingUtilities,
			MinFactor: 10, MaxFactor: 20,
			Source: "India GHG inventory; energy spend research",
			Notes:  "Region/energy mix; urban households often higher",
		},
		{
			Category:  models.CategoryTransport,
			MinFactor: 20, MaxFactor: 40,
			Source: "Transport emission factors; fuel use studies",
			Notes:  "Vehicle type, efficiency, usage frequency",
		},
		{
			Category:  models.CategoryClothing,
			MinFactor: 5, MaxFactor: 10,
			Source: "Input-output modelling; household expenditure",
			Notes:  "Imported goods, luxury items on higher side",
		},
		{
			Category:  models.CategoryHouseholdGoods,
			MinFactor: 5, MaxFactor: 10,
			Source: "Consumption and durable goods footprint studies",
			Notes:  "Tech products, large furniture slightly above mean",
		},
		{
			Category:  models.CategoryHealthcare,
			MinFactor: 3, MaxFactor: 7,
			Source: "Service-based emission inventories; household study",
			Notes:  "Pharmaceutics and hospital services drive upper bound",
		},
		{
			Category:  models.CategoryEducationComms,
			MinFactor: 1, MaxFactor: 5,
			Source: "Expenditure/emission correlation (services)",
			Notes:  "Digital/online activity lower, sector growing emissions",
		},
		{
			Category:  models.CategoryRecreationLeisure,
			MinFactor: 2, MaxFactor: 8,
			Source: "Indian consumption/emission category analysis",
			Notes:  "Travel (air/car) pushes value up significantly",
		},
		{
			Category:  models.CategoryFinancialInsurance,
			MinFactor: 1, MaxFactor: 3,
			Source: "Household indirect emissions; admin activities",
			Notes:  "Largely administrative; negligible direct emissions",
		},
		{
			Category:  models.CategoryMiscellaneous,
			MinFactor: 2, MaxFactor: 6,
			Source: "Retail/service studies; gifts, minor purchases",
			Notes:  "Wide spread depending on nature of product/service",
		},
	}
}
