package event

import "sync"

var (
	registryOnce sync.Once
	nameToType   = make(map[string]EventType)
	typeToName   = make(map[EventType]string)
)

// registerType maps a config-facing name to an EventType
func registerType(name string, et EventType) {
	nameToType[name] = et
	typeToName[et] = name
}

func initRegistry() {
	registryOnce.Do(func() {
		registerType("EventLevelCleared", EventLevelCleared)

		registerType("EventShootStarted", EventShootStarted)
		registerType("EventShootFinished", EventShootFinished)
		registerType("EventRechargeStarted", EventRechargeStarted)
		registerType("EventRechargeFinished", EventRechargeFinished)
		registerType("EventReloadStarted", EventReloadStarted)
		registerType("EventReloadFinished", EventReloadFinished)
		registerType("EventWeaponChanged", EventWeaponChanged)
		registerType("EventWeaponImproved", EventWeaponImproved)

		registerType("EventProjectileSpawned", EventProjectileSpawned)
		registerType("EventProjectileFinished", EventProjectileFinished)
		registerType("EventRicochet", EventRicochet)

		registerType("EventExploded", EventExploded)
		registerType("EventDamageDealt", EventDamageDealt)
		registerType("EventActorKilled", EventActorKilled)
	})
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	initRegistry()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the registered name, or "" for unknown types
func GetEventName(et EventType) string {
	initRegistry()
	return typeToName[et]
}

// EventTypes lists every registered type in declaration order
func EventTypes() []EventType {
	initRegistry()
	out := make([]EventType, 0, len(typeToName))
	for et := EventNone + 1; et < eventTypeCount; et++ {
		if _, ok := typeToName[et]; ok {
			out = append(out, et)
		}
	}
	return out
}

func (et EventType) String() string {
	if name := GetEventName(et); name != "" {
		return name
	}
	return "EventUnknown"
}
