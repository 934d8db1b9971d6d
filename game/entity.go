package game

// Kind is the type of a transient entity.
type Kind uint8

const (
	KindCar Kind = iota
	KindTruck
	KindMotorcycle
	KindShield
	KindSlowTime
	KindSpeedBoost
)

var (
	vehicleKinds = []Kind{KindCar, KindTruck, KindMotorcycle}
	powerUpKinds = []Kind{KindShield, KindSlowTime, KindSpeedBoost}
)

func (k Kind) String() string {
	switch k {
	case KindCar:
		return "car"
	case KindTruck:
		return "truck"
	case KindMotorcycle:
		return "motorcycle"
	case KindShield:
		return "shield"
	case KindSlowTime:
		return "slowTime"
	case KindSpeedBoost:
		return "speedBoost"
	default:
		return "unknown"
	}
}

func (k Kind) IsVehicle() bool {
	return k <= KindMotorcycle
}

func (k Kind) IsPowerUp() bool {
	return k >= KindShield && k <= KindSpeedBoost
}

// Handle is the rendering collaborator's name for an entity's on-screen object.
type Handle uint64

// Entity is a vehicle or power-up. It is plain data; the renderer only ever
// sees it through its Handle.
type Entity struct {
	Kind Kind
	Pos  Vec2
	Size Vec2
	// Dir is +1 for rightward vehicles, -1 for leftward ones and 0 for power-ups.
	Dir float64
	// Speed is the horizontal step of a vehicle or the fall step of a falling power-up.
	Speed  float64
	Lane   int
	Handle Handle
}

func (e *Entity) Rect() Rect {
	return RectAt(e.Pos, e.Size)
}

type vehicleSpec struct {
	width    float64
	minSpeed float64
	maxSpeed float64
}

// Speed bands do not overlap so that motorcycle > car > truck holds per vehicle.
var vehicleSpecs = [...]vehicleSpec{
	KindCar:        {width: 60, minSpeed: 2, maxSpeed: 3},
	KindTruck:      {width: 100, minSpeed: 1, maxSpeed: 2},
	KindMotorcycle: {width: 30, minSpeed: 3, maxSpeed: 4.5},
}

// untypedVehicle is used for every vehicle when typed vehicles are off.
var untypedVehicle = vehicleSpec{width: 60, minSpeed: 1, maxSpeed: 3}

const vehiclePadding = 2
