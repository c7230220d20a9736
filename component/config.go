package component

// VisionConfig configures a VisionSensor.
type VisionConfig struct {
	Radius    float64
	Angle     float64
	Obstacles ObstacleMask
}

// FacingConfig configures a FacingModel.
type FacingConfig struct {
	IdleThreshold     float64
	SmoothTime        float64
	MinSwitchInterval float64
	PatrolAnimSpeed   float64
	ChaseAnimSpeed    float64
}

// PatrolConfig configures a PatrolTraversal.
type PatrolConfig struct {
	Speed           float64
	ArriveThreshold float64
	WaitAtPoint     float64
	PingPong        bool
	RotateTransform bool
	LookAround      bool
	LookStep        float64
	LookOrder       LookOrder
}

// PursuitConfig configures a PursuitController.
type PursuitConfig struct {
	PatrolSpeed          float64
	ChaseSpeed           float64
	ExpandMultiplier     float64
	ShrinkPerSecond      float64
	RepathInterval       float64
	LoseSightTime        float64
	SearchTime           float64
	CatchDistance        float64
	CaptureOnHideInSight bool
}

func DefaultVisionConfig() VisionConfig {
	return VisionConfig{Radius: 5, Angle: 70, Obstacles: ^ObstacleMask(0)}
}

func DefaultFacingConfig() FacingConfig {
	return FacingConfig{
		IdleThreshold:     0.05,
		SmoothTime:        0.10,
		MinSwitchInterval: 0.08,
		PatrolAnimSpeed:   1.0,
		ChaseAnimSpeed:    1.6,
	}
}

func DefaultPatrolConfig() PatrolConfig {
	return PatrolConfig{
		Speed:           3,
		ArriveThreshold: 0.1,
		WaitAtPoint:     0.2,
		RotateTransform: true,
		LookAround:      true,
		LookStep:        0.25,
		LookOrder:       LookClockwise,
	}
}

func DefaultPursuitConfig() PursuitConfig {
	return PursuitConfig{
		PatrolSpeed:          3,
		ChaseSpeed:           5,
		ExpandMultiplier:     1.6,
		ShrinkPerSecond:      0.25,
		RepathInterval:       0.05,
		LoseSightTime:        2.0,
		SearchTime:           1.5,
		CatchDistance:        0.5,
		CaptureOnHideInSight: true,
	}
}
