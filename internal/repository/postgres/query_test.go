package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/team-users-service/internal/domain"
)

func TestMemberQuery_TeamScope(t *testing.T) {
	query, args := newMemberQuery(7).build()

	assert.Contains(t, query, "JOIN memberships m ON m.user_id = u.id")
	assert.Contains(t, query, "m.team_id = $1")
	assert.Contains(t, query, "m.accepted = TRUE")
	assert.Contains(t, query, "ORDER BY u.id")
	assert.NotContains(t, query, "LIMIT")
	assert.NotContains(t, query, "OFFSET")
	assert.Equal(t, []any{7}, args)
}

func TestMemberQuery_Emails(t *testing.T) {
	t.Run("empty list does not restrict", func(t *testing.T) {
		query, args := newMemberQuery(1).withEmails(nil).build()

		assert.NotContains(t, query, "u.email = ANY")
		assert.Len(t, args, 1)
	})

	t.Run("non-empty list", func(t *testing.T) {
		emails := []string{"a@acme.com", "b@acme.com"}
		query, args := newMemberQuery(1).withEmails(emails).build()

		assert.Contains(t, query, "u.email = ANY($2)")
		assert.Equal(t, []any{1, emails}, args)
	})
}

func TestMemberQuery_Page(t *testing.T) {
	t.Run("skip and take", func(t *testing.T) {
		query, args := newMemberQuery(1).page(20, 10).build()

		assert.Contains(t, query, "OFFSET $2")
		assert.Contains(t, query, "LIMIT $3")
		assert.Equal(t, []any{1, 20, 10}, args)
	})

	t.Run("zero skip is omitted", func(t *testing.T) {
		query, args := newMemberQuery(1).page(0, 250).build()

		assert.NotContains(t, query, "OFFSET")
		assert.Contains(t, query, "LIMIT $2")
		assert.Equal(t, []any{1, 250}, args)
	})
}

func TestMemberQuery_AttributeFilters(t *testing.T) {
	ids := []string{"opt1", "opt2"}

	t.Run("AND checks each option separately", func(t *testing.T) {
		q, err := newMemberQuery(1).withAttributeFilters(domain.AttributeFilters{
			AssignedOptionIDs: ids,
			Operator:          domain.AttributeOperatorAnd,
		})
		require.NoError(t, err)
		query, args := q.build()

		assert.Equal(t, 2, strings.Count(query, "EXISTS (SELECT 1 FROM attribute_to_user"))
		assert.Contains(t, query, "a.attribute_option_id = $2)")
		assert.Contains(t, query, "a.attribute_option_id = $3)")
		assert.NotContains(t, query, "NOT EXISTS")
		assert.Equal(t, []any{1, "opt1", "opt2"}, args)
	})

	t.Run("OR checks the whole set once", func(t *testing.T) {
		q, err := newMemberQuery(1).withAttributeFilters(domain.AttributeFilters{
			AssignedOptionIDs: ids,
			Operator:          domain.AttributeOperatorOr,
		})
		require.NoError(t, err)
		query, args := q.build()

		assert.Equal(t, 1, strings.Count(query, "EXISTS ("))
		assert.Contains(t, query, "a.attribute_option_id = ANY($2)")
		assert.NotContains(t, query, "NOT EXISTS")
		assert.Equal(t, []any{1, ids}, args)
	})

	t.Run("NONE negates the set check", func(t *testing.T) {
		q, err := newMemberQuery(1).withAttributeFilters(domain.AttributeFilters{
			AssignedOptionIDs: ids,
			Operator:          domain.AttributeOperatorNone,
		})
		require.NoError(t, err)
		query, args := q.build()

		assert.Contains(t, query, "NOT EXISTS (SELECT 1 FROM attribute_to_user a WHERE a.member_id = m.id AND a.attribute_option_id = ANY($2))")
		assert.Equal(t, []any{1, ids}, args)
	})

	t.Run("unknown operator", func(t *testing.T) {
		_, err := newMemberQuery(1).withAttributeFilters(domain.AttributeFilters{
			AssignedOptionIDs: ids,
			Operator:          "XOR",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAttributeOperator)
	})

	t.Run("combined with emails and page", func(t *testing.T) {
		q, err := newMemberQuery(3).
			withEmails([]string{"a@acme.com"}).
			withAttributeFilters(domain.AttributeFilters{
				AssignedOptionIDs: []string{"opt1"},
				Operator:          domain.AttributeOperatorOr,
			})
		require.NoError(t, err)
		query, args := q.page(5, 15).build()

		assert.Contains(t, query, "u.email = ANY($2)")
		assert.Contains(t, query, "a.attribute_option_id = ANY($3)")
		assert.Contains(t, query, "OFFSET $4")
		assert.Contains(t, query, "LIMIT $5")
		assert.Len(t, args, 5)
	})
}

func TestMemberQuery_UserIDs(t *testing.T) {
	query, args := newMemberQuery(2).withUserIDs([]int{4, 5}).build()

	assert.Contains(t, query, "m.user_id = ANY($2)")
	assert.Equal(t, []any{2, []int{4, 5}}, args)
}
