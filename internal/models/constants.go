// Package models provides the data structures shared by the leak engine, the
// suggestion strategies and the report renderers.
package models

import "os"

// Spending categories, in their fixed precedence order.
const (
	CategoryFood          = "Food"
	CategoryTravel        = "Travel"
	CategoryShopping      = "Shopping"
	CategoryEntertainment = "Entertainment"
	CategorySubscriptions = "Subscriptions"
	CategoryOther         = "Other"
)

// Leak bucket names as they appear in reports.
const (
	BucketRepeatingCharges  = "repeating_charges"
	BucketMicroTransactions = "micro_transactions"
	BucketFees              = "fees"
	BucketPenalties         = "penalties"
)

// File permissions
const (
	PermissionConfigFile os.FileMode = 0600
	PermissionReportFile os.FileMode = 0644
)
