package billing

import "github.com/shopspring/decimal"

// UnknownShippingMark buckets items whose shipping mark was left blank so
// they still show up on invoices instead of being silently dropped.
const UnknownShippingMark = "Unknown"

// InvoiceGroup is the derived aggregate for one shipping mark within one
// container. It is never persisted as-is; the invoice service snapshots it
// into an Invoice record at issue time.
type InvoiceGroup struct {
	ShippingMark     string
	Items            []LineItem
	TotalQuantity    int
	TotalMeasurement decimal.Decimal // sum of CBM or weight per the cargo leg
	TotalAmount      decimal.Decimal
}

// AggregateGroup totals one shipping-mark group. Items are assumed to belong
// to the same container and shipping mark; the caller owns that grouping.
//
// TotalAmount is the sum of per-item amounts, not the formula applied to the
// summed measurement. The Ghana flat minimums are per item, so summing
// measurements first would silently drop them for small items bundled with
// large ones. An empty slice yields all-zero aggregates.
func AggregateGroup(cfg PricingConfig, items []LineItem) InvoiceGroup {
	group := InvoiceGroup{
		Items:            items,
		TotalMeasurement: decimal.Zero,
		TotalAmount:      decimal.Zero,
	}
	if len(items) > 0 {
		group.ShippingMark = items[0].ShippingMark
		if group.ShippingMark == "" {
			group.ShippingMark = UnknownShippingMark
		}
	}

	for _, item := range items {
		group.TotalQuantity += item.Quantity
		group.TotalMeasurement = group.TotalMeasurement.Add(Measurement(cfg, item))
		group.TotalAmount = group.TotalAmount.Add(ComputeItemAmount(cfg, item))
	}
	return group
}

// GroupByShippingMark partitions items by shipping mark, preserving the
// input order of items within each group. Groups come back in order of
// first occurrence — a map would lose the ordering invoice rendering needs.
// Blank marks are grouped under UnknownShippingMark.
func GroupByShippingMark(items []LineItem) [][]LineItem {
	index := make(map[string]int)
	var groups [][]LineItem

	for _, item := range items {
		mark := item.ShippingMark
		if mark == "" {
			mark = UnknownShippingMark
		}
		i, ok := index[mark]
		if !ok {
			i = len(groups)
			index[mark] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], item)
	}
	return groups
}

// BuildInvoiceGroups partitions a container's items by shipping mark and
// aggregates each group. This is the single entry point invoice preview,
// issue, and export all share.
func BuildInvoiceGroups(cfg PricingConfig, items []LineItem) []InvoiceGroup {
	partitions := GroupByShippingMark(items)
	groups := make([]InvoiceGroup, 0, len(partitions))
	for _, part := range partitions {
		groups = append(groups, AggregateGroup(cfg, part))
	}
	return groups
}
