// Package catalog holds the fixed reference data for every car and
// warehouse the game can sell. The data never changes at runtime; the
// account record only stores ids pointing into it.
package catalog

type Condition string

const (
	ConditionPoor      Condition = "poor"
	ConditionFair      Condition = "fair"
	ConditionGood      Condition = "good"
	ConditionExcellent Condition = "excellent"
)

type Seller string

const (
	SellerWarehouse Seller = "warehouse"
	SellerPrivate   Seller = "private"
)

// StarterWarehouseID is pre-owned by every fresh account, stocked with
// its Inventory list.
const StarterWarehouseID = 22

type Car struct {
	ID        int       `json:"id"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Mileage   int       `json:"mileage"`
	Condition Condition `json:"condition"`
	Price     int       `json:"price"`
	Seller    Seller    `json:"seller"`
}

type Warehouse struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Location       string `json:"location"`
	Capacity       int    `json:"capacity"`
	Price          int    `json:"price"`
	MonthlyUpkeep  int    `json:"monthlyUpkeep"`
	Condition      string `json:"condition"`
	Security       string `json:"security"`
	HasLoadingDock bool   `json:"hasLoadingDock"`
	Description    string `json:"description"`
	Inventory      []int  `json:"inventory,omitempty"`
}

var cars = []Car{
	{ID: 1, Make: "Toyota", Model: "Corolla", Year: 2004, Mileage: 212000, Condition: ConditionPoor, Price: 1500, Seller: SellerPrivate},
	{ID: 2, Make: "Honda", Model: "Civic", Year: 2007, Mileage: 168000, Condition: ConditionFair, Price: 3200, Seller: SellerPrivate},
	{ID: 3, Make: "Ford", Model: "Focus", Year: 2009, Mileage: 145000, Condition: ConditionFair, Price: 3800, Seller: SellerWarehouse},
	{ID: 4, Make: "Mazda", Model: "3", Year: 2012, Mileage: 98000, Condition: ConditionGood, Price: 7400, Seller: SellerWarehouse},
	{ID: 5, Make: "Subaru", Model: "Impreza", Year: 2011, Mileage: 121000, Condition: ConditionGood, Price: 6900, Seller: SellerPrivate},
	{ID: 6, Make: "Volkswagen", Model: "Golf", Year: 2013, Mileage: 89000, Condition: ConditionGood, Price: 8200, Seller: SellerWarehouse},
	{ID: 7, Make: "BMW", Model: "328i", Year: 2010, Mileage: 134000, Condition: ConditionFair, Price: 7800, Seller: SellerPrivate},
	{ID: 8, Make: "Audi", Model: "A4", Year: 2012, Mileage: 110000, Condition: ConditionGood, Price: 9600, Seller: SellerPrivate},
	{ID: 9, Make: "Mercedes-Benz", Model: "C300", Year: 2014, Mileage: 76000, Condition: ConditionExcellent, Price: 16800, Seller: SellerWarehouse},
	{ID: 10, Make: "Chevrolet", Model: "Malibu", Year: 2008, Mileage: 156000, Condition: ConditionPoor, Price: 2100, Seller: SellerWarehouse},
	{ID: 11, Make: "Nissan", Model: "Altima", Year: 2010, Mileage: 142000, Condition: ConditionFair, Price: 4300, Seller: SellerPrivate},
	{ID: 12, Make: "Hyundai", Model: "Elantra", Year: 2015, Mileage: 67000, Condition: ConditionGood, Price: 8900, Seller: SellerWarehouse},
	{ID: 13, Make: "Kia", Model: "Optima", Year: 2014, Mileage: 81000, Condition: ConditionGood, Price: 8100, Seller: SellerWarehouse},
	{ID: 14, Make: "Dodge", Model: "Charger", Year: 2013, Mileage: 102000, Condition: ConditionFair, Price: 9200, Seller: SellerPrivate},
	{ID: 15, Make: "Jeep", Model: "Wrangler", Year: 2011, Mileage: 118000, Condition: ConditionGood, Price: 13500, Seller: SellerPrivate},
	{ID: 16, Make: "Toyota", Model: "Camry", Year: 2016, Mileage: 54000, Condition: ConditionExcellent, Price: 14200, Seller: SellerWarehouse},
	{ID: 17, Make: "Honda", Model: "Accord", Year: 2015, Mileage: 72000, Condition: ConditionGood, Price: 11800, Seller: SellerPrivate},
	{ID: 18, Make: "Ford", Model: "Mustang", Year: 2012, Mileage: 94000, Condition: ConditionGood, Price: 15900, Seller: SellerWarehouse},
	{ID: 19, Make: "Chevrolet", Model: "Camaro", Year: 2010, Mileage: 127000, Condition: ConditionFair, Price: 10400, Seller: SellerPrivate},
	{ID: 20, Make: "Subaru", Model: "Outback", Year: 2014, Mileage: 88000, Condition: ConditionGood, Price: 12600, Seller: SellerWarehouse},
	{ID: 21, Make: "Volvo", Model: "XC60", Year: 2013, Mileage: 99000, Condition: ConditionFair, Price: 10900, Seller: SellerPrivate},
	{ID: 22, Make: "Lexus", Model: "IS250", Year: 2011, Mileage: 115000, Condition: ConditionGood, Price: 11200, Seller: SellerWarehouse},
	{ID: 23, Make: "Mazda", Model: "MX-5", Year: 2009, Mileage: 86000, Condition: ConditionGood, Price: 9800, Seller: SellerPrivate},
	{ID: 24, Make: "Mini", Model: "Cooper S", Year: 2012, Mileage: 92000, Condition: ConditionFair, Price: 7600, Seller: SellerWarehouse},
	{ID: 25, Make: "Buick", Model: "LaCrosse", Year: 2006, Mileage: 189000, Condition: ConditionPoor, Price: 1800, Seller: SellerPrivate},
	{ID: 26, Make: "Pontiac", Model: "G6", Year: 2007, Mileage: 174000, Condition: ConditionPoor, Price: 1600, Seller: SellerWarehouse},
	{ID: 27, Make: "Tesla", Model: "Model S", Year: 2016, Mileage: 61000, Condition: ConditionExcellent, Price: 28900, Seller: SellerPrivate},
	{ID: 28, Make: "Porsche", Model: "Boxster", Year: 2008, Mileage: 103000, Condition: ConditionGood, Price: 21400, Seller: SellerPrivate},
	{ID: 29, Make: "Saab", Model: "9-3", Year: 2005, Mileage: 198000, Condition: ConditionPoor, Price: 1400, Seller: SellerWarehouse},
	{ID: 30, Make: "Infiniti", Model: "G37", Year: 2012, Mileage: 107000, Condition: ConditionFair, Price: 8700, Seller: SellerWarehouse},
}

var warehouses = []Warehouse{
	{ID: 21, Title: "Riverside Depot", Location: "East Docks", Capacity: 4, Price: 9500, MonthlyUpkeep: 240, Condition: "fair", Security: "fenced lot", HasLoadingDock: false, Description: "Compact depot near the river freight line. Tight but cheap."},
	{ID: 22, Title: "Old Mill Garage", Location: "Milltown", Capacity: 3, Price: 7200, MonthlyUpkeep: 180, Condition: "worn", Security: "padlock and cameras", HasLoadingDock: false, Description: "A converted mill outbuilding. Drafty, but the rent is paid off.", Inventory: []int{1, 2}},
	{ID: 23, Title: "Central Storage Hall", Location: "Midtown", Capacity: 6, Price: 12000, MonthlyUpkeep: 380, Condition: "good", Security: "alarm system", HasLoadingDock: true, Description: "Mid-size hall with street access on two sides."},
	{ID: 24, Title: "Harbor Freight Shed", Location: "South Harbor", Capacity: 8, Price: 18500, MonthlyUpkeep: 520, Condition: "good", Security: "24h patrol", HasLoadingDock: true, Description: "Long shed right off the harbor ramp. Room for a small fleet."},
	{ID: 25, Title: "Airfield Hangar B", Location: "Old Airfield", Capacity: 12, Price: 31000, MonthlyUpkeep: 860, Condition: "excellent", Security: "gated, badge entry", HasLoadingDock: true, Description: "Decommissioned hangar with polished concrete and high doors."},
	{ID: 26, Title: "Northgate Unit 7", Location: "Northgate Industrial", Capacity: 5, Price: 10800, MonthlyUpkeep: 310, Condition: "fair", Security: "shared gate", HasLoadingDock: false, Description: "Standard industrial unit in a shared yard."},
	{ID: 27, Title: "Quarry Road Barn", Location: "Quarry Road", Capacity: 7, Price: 14900, MonthlyUpkeep: 290, Condition: "worn", Security: "none", HasLoadingDock: false, Description: "A big dry barn out of town. Bring your own locks."},
	{ID: 28, Title: "Summit Logistics Bay", Location: "Summit Park", Capacity: 10, Price: 24500, MonthlyUpkeep: 700, Condition: "excellent", Security: "alarm and patrol", HasLoadingDock: true, Description: "Modern bay in a managed logistics park."},
}

var carsByID = func() map[int]Car {
	m := make(map[int]Car, len(cars))
	for _, c := range cars {
		m[c.ID] = c
	}
	return m
}()

var warehousesByID = func() map[int]Warehouse {
	m := make(map[int]Warehouse, len(warehouses))
	for _, w := range warehouses {
		m[w.ID] = w
	}
	return m
}()

func CarByID(id int) (Car, bool) {
	c, ok := carsByID[id]
	return c, ok
}

func WarehouseByID(id int) (Warehouse, bool) {
	w, ok := warehousesByID[id]
	return w, ok
}

// Cars returns the full catalog in id order. Callers must not mutate
// the returned slice's backing data beyond the copy they receive.
func Cars() []Car {
	out := make([]Car, len(cars))
	copy(out, cars)
	return out
}

func Warehouses() []Warehouse {
	out := make([]Warehouse, len(warehouses))
	copy(out, warehouses)
	return out
}
