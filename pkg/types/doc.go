// Package types defines the Item and Binding entities, namespace paths,
// configuration, and standard error types for the Satchel exchange system.
// Implements: prd001-exchange-core (Item, ItemKind, NamespacePath, Config, errors);
//
//	docs/ARCHITECTURE § Data Model.
package types
