package dto_test

import (
	"reflect"
	"seatwise/shared/dto"
	"testing"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name: "eq operator",
			filter: dto.Filter{
				Field:    "status",
				Operator: dto.FilterOperatorEq,
				Value:    "pending",
			},
			expectedSQL:  "status = :status",
			expectedArgs: map[string]any{"status": "pending"},
		},
		{
			name: "eq operator with table",
			filter: dto.Filter{
				Field:    "status",
				Operator: dto.FilterOperatorEq,
				Value:    "pending",
				Table:    "bookings",
			},
			expectedSQL:  "bookings.status = :status",
			expectedArgs: map[string]any{"status": "pending"},
		},
		{
			name: "eq operator with custom arg name",
			filter: dto.Filter{
				ArgName:  "start_range",
				Field:    "start_time",
				Operator: dto.FilterOperatorEq,
				Value:    "2024-01-01",
			},
			expectedSQL:  "start_time = :start_range",
			expectedArgs: map[string]any{"start_range": "2024-01-01"},
		},
		{
			name: "like operator wraps value in wildcards",
			filter: dto.Filter{
				Field:    "name",
				Operator: dto.FilterOperatorLike,
				Value:    "john",
			},
			expectedSQL:  "LOWER(name) LIKE LOWER(:name) ",
			expectedArgs: map[string]any{"name": "%john%"},
		},
		{
			name: "in operator with slice",
			filter: dto.Filter{
				Field:    "status",
				Operator: dto.FilterOperatorIn,
				Value:    []string{"pending", "confirmed"},
			},
			expectedSQL: "status IN (:status_0, :status_1) ",
			expectedArgs: map[string]any{
				"status_0": "pending",
				"status_1": "confirmed",
			},
		},
		{
			name: "not_eq operator",
			filter: dto.Filter{
				Field:    "role",
				Operator: dto.FilterOperatorNotEq,
				Value:    "superadmin",
			},
			expectedSQL:  "role != :role",
			expectedArgs: map[string]any{"role": "superadmin"},
		},
		{
			name: "less operator",
			filter: dto.Filter{
				Field:    "start_time",
				Operator: dto.FilterOperatorLess,
				Value:    "2024-02-01",
			},
			expectedSQL:  "start_time < :start_time",
			expectedArgs: map[string]any{"start_time": "2024-02-01"},
		},
		{
			name: "less_eq operator",
			filter: dto.Filter{
				Field:    "amount",
				Operator: dto.FilterOperatorLessEq,
				Value:    100,
			},
			expectedSQL:  "amount <= :amount",
			expectedArgs: map[string]any{"amount": 100},
		},
		{
			name: "greater operator",
			filter: dto.Filter{
				Field:    "end_time",
				Operator: dto.FilterOperatorGreater,
				Value:    "2024-01-01",
			},
			expectedSQL:  "end_time > :end_time",
			expectedArgs: map[string]any{"end_time": "2024-01-01"},
		},
		{
			name: "greater_eq operator",
			filter: dto.Filter{
				Field:    "date",
				Operator: dto.FilterOperatorGreaterEq,
				Value:    "2024-01-01",
			},
			expectedSQL:  "date >= :date",
			expectedArgs: map[string]any{"date": "2024-01-01"},
		},
		{
			name: "plain query",
			filter: dto.Filter{
				Operator: dto.FilterPlainQuery,
				Value:    "deleted_at IS NULL",
			},
			expectedSQL:  "(deleted_at IS NULL)",
			expectedArgs: map[string]any{},
		},
		{
			name: "is null",
			filter: dto.Filter{
				Field:    "end_time",
				Operator: dto.FilterIsNull,
			},
			expectedSQL:  "end_time IS NULL",
			expectedArgs: map[string]any{},
		},
		{
			name: "is not null",
			filter: dto.Filter{
				Field:    "assigned_to",
				Operator: dto.FilterIsNotNull,
			},
			expectedSQL:  "assigned_to IS NOT NULL",
			expectedArgs: map[string]any{},
		},
		{
			name: "unknown operator yields empty clause",
			filter: dto.Filter{
				Field:    "status",
				Operator: "bogus",
				Value:    "pending",
			},
			expectedSQL:  "",
			expectedArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.filter.GetWhereClause()

			if sql != tt.expectedSQL {
				t.Errorf("expected clause %q, got %q", tt.expectedSQL, sql)
			}

			if !reflect.DeepEqual(args, tt.expectedArgs) {
				t.Errorf("expected args %+v, got %+v", tt.expectedArgs, args)
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		group        dto.FilterGroup
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name:         "empty group",
			group:        dto.FilterGroup{},
			expectedSQL:  "",
			expectedArgs: map[string]any{},
		},
		{
			name: "single filter",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "pending"},
				},
			},
			expectedSQL:  "(status = :status)",
			expectedArgs: map[string]any{"status": "pending"},
		},
		{
			name: "two filters joined with AND",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "pending"},
					dto.Filter{Field: "type", Operator: dto.FilterOperatorEq, Value: "payment"},
				},
			},
			expectedSQL: "(status = :status AND type = :type)",
			expectedArgs: map[string]any{
				"status": "pending",
				"type":   "payment",
			},
		},
		{
			name: "missing operator defaults to AND",
			group: dto.FilterGroup{
				Filters: []any{
					dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "pending"},
					dto.Filter{Field: "type", Operator: dto.FilterOperatorEq, Value: "payment"},
				},
			},
			expectedSQL: "(status = :status AND type = :type)",
			expectedArgs: map[string]any{
				"status": "pending",
				"type":   "payment",
			},
		},
		{
			name: "nested group joined with OR",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "seat_id", Operator: dto.FilterOperatorEq, Value: "seat-1"},
					dto.FilterGroup{
						Operator: dto.FilterGroupOperatorOr,
						Filters: []any{
							dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "pending"},
							dto.Filter{ArgName: "status_alt", Field: "status", Operator: dto.FilterOperatorEq, Value: "confirmed"},
						},
					},
				},
			},
			expectedSQL: "(seat_id = :seat_id AND (status = :status OR status = :status_alt))",
			expectedArgs: map[string]any{
				"seat_id":    "seat-1",
				"status":     "pending",
				"status_alt": "confirmed",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.group.GetWhereClause()

			if sql != tt.expectedSQL {
				t.Errorf("expected clause %q, got %q", tt.expectedSQL, sql)
			}

			if !reflect.DeepEqual(args, tt.expectedArgs) {
				t.Errorf("expected args %+v, got %+v", tt.expectedArgs, args)
			}
		})
	}
}
