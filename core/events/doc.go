// Package events defines the lifecycle events emitted by object factories.
//
// Available event types:
//   - ObjectEvent: an object was created, rejected, taken or destroyed
//   - ModuleEvent: a plugin module was loaded, failed to load or was unloaded
package events
