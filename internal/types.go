package internal

import (
	"sjsage522/propertymonitor/services/cache"
	"sjsage522/propertymonitor/services/notifier"
	"sjsage522/propertymonitor/services/store"
)

// Dependencies holds all service dependencies
type Dependencies struct {
	Cache    cache.CacheService
	Store    store.Store
	Notifier notifier.Notifier
}
