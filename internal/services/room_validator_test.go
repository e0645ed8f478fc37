package services

import (
	"testing"
	"time"

	"meetinggate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomValidator_Validate(t *testing.T) {
	tests := []struct {
		name      string
		forbidden string
		raw       string
		want      string
		wantErr   error
	}{
		{name: "trims whitespace", raw: "  team-standup \t", want: "team-standup"},
		{name: "empty", raw: "", wantErr: domain.ErrEmptyRoom},
		{name: "only whitespace", raw: " \n\t ", wantErr: domain.ErrEmptyRoom},
		{name: "slash forbidden by default", raw: "bad/room", wantErr: domain.ErrForbiddenCharacter},
		{name: "dot forbidden by default", raw: "v1.2", wantErr: domain.ErrForbiddenCharacter},
		{name: "quote", raw: `say"hi`, wantErr: domain.ErrForbiddenCharacter},
		{name: "percent", raw: "100%", wantErr: domain.ErrForbiddenCharacter},
		{name: "slash allowed by narrower set", forbidden: "?&:'\"%#.", raw: "a/b", want: "a/b"},
		{name: "unicode allowed", raw: "réunion-équipe", want: "réunion-équipe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewRoomValidator(tt.forbidden)
			got, err := v.Validate(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoomValidator_EveryDefaultCharIsRejected(t *testing.T) {
	v := NewRoomValidator("")
	for _, r := range DefaultForbiddenChars {
		_, err := v.Validate("room" + string(r) + "name")
		assert.ErrorIs(t, err, domain.ErrForbiddenCharacter, "char %q", r)
	}
}

func TestRoomValidator_ForbiddenErrorListsConfiguredSet(t *testing.T) {
	_, err := NewRoomValidator("#/").Validate("a#b")

	require.ErrorIs(t, err, domain.ErrForbiddenCharacter)
	assert.Equal(t, []any{"# /"}, domain.MessageArgs(err))
}

func TestPatternValidity(t *testing.T) {
	checker, err := NewPatternValidity(`^[^?&:"'%#]+$`)
	require.NoError(t, err)
	require.NotNil(t, checker)
	assert.True(t, checker.Valid("team-standup"))
	assert.False(t, checker.Valid("a#b"))

	none, err := NewPatternValidity("")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = NewPatternValidity("([")
	require.Error(t, err)
}

func TestGenerateRoomName(t *testing.T) {
	v := NewRoomValidator("")
	for i := 0; i < 20; i++ {
		name, err := GenerateRoomName()
		require.NoError(t, err)
		_, err = v.Validate(name)
		assert.NoError(t, err, name)
	}
}

func TestTemporalGate_Check(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		enabled bool
		event   *domain.EventRecord
		wantErr error
	}{
		{"inside window", true, domain.NewEventRecord("e1", "r", "", now.Add(-time.Hour), now.Add(time.Hour)), nil},
		{"ended", true, domain.NewEventRecord("e1", "r", "", now.Add(-2*time.Hour), now.Add(-time.Minute)), domain.ErrEventInPast},
		{"not started", true, domain.NewEventRecord("e1", "r", "", now.Add(time.Minute), now.Add(time.Hour)), domain.ErrEventInFuture},
		{"start boundary", true, domain.NewEventRecord("e1", "r", "", now, now.Add(time.Hour)), nil},
		{"end boundary", true, domain.NewEventRecord("e1", "r", "", now.Add(-time.Hour), now), nil},
		{"open ended", true, &domain.EventRecord{ID: "e1", StartTime: now.Add(-time.Hour)}, nil},
		{"disabled ignores past", false, domain.NewEventRecord("e1", "r", "", now.Add(-2*time.Hour), now.Add(-time.Hour)), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TemporalGate{Enabled: tt.enabled}.Check(now, tt.event)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
