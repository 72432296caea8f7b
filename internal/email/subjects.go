package email

const (
	subjectEmergencyCallbackFmt = "URGENT: call back %s (score %d)"
	emergencyCallbackTitle      = "Emergency callback requested"
)
