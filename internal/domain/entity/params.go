package entity

// Animator parameter names shared by the motion systems and the animator
const (
	ParamWalking = "isWalking"
	ParamRunning = "isRunning"
	ParamDancing = "isDancing"
)
