package transform

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	t.Run("should decode a submission", func(t *testing.T) {
		p, err := ParsePayload(json.RawMessage(`{"id": "abc", "domain": "pima", "form": {"@name": "Followup"}}`))
		require.NoError(t, err)
		assert.Equal(t, "abc", p.SubmissionID())
		assert.Equal(t, "pima", p.Domain())
		assert.Equal(t, "Followup", p.FormName())
	})

	t.Run("should reject invalid JSON", func(t *testing.T) {
		_, err := ParsePayload(json.RawMessage(`{"id":`))
		assert.Error(t, err)
	})
}

func TestPayloadBuildVersion(t *testing.T) {
	t.Run("should read the metadata build version", func(t *testing.T) {
		p := Payload{"metadata": map[string]any{"app_build_version": "292"}}
		assert.Equal(t, 292, p.BuildVersion())
	})

	t.Run("should fall back to the form meta appVersion", func(t *testing.T) {
		p := Payload{"form": map[string]any{"meta": map[string]any{"appVersion": "54"}}}
		assert.Equal(t, 54, p.BuildVersion())
	})

	t.Run("should return zero when absent or unparseable", func(t *testing.T) {
		assert.Equal(t, 0, Payload{}.BuildVersion())
		assert.Equal(t, 0, Payload{"metadata": map[string]any{"app_build_version": "v2.27"}}.BuildVersion())
	})
}

func TestPayloadAttachmentURL(t *testing.T) {
	p := Payload{
		"domain": "tns-proj",
		"form":   map[string]any{"meta": map[string]any{"instanceID": "uuid-123"}},
	}
	url := p.AttachmentURL("https://www.commcarehq.org", "photo.jpg")
	assert.Equal(t, "https://www.commcarehq.org/a/tns-proj/api/form/attachment/uuid-123/photo.jpg", url)
}

func TestAttachmentURLFor(t *testing.T) {
	p := Payload{
		"attachments": map[string]any{
			"photo.jpg": map[string]any{"url": "https://host/photo.jpg"},
		},
	}
	assert.Equal(t, "https://host/photo.jpg", AttachmentURLFor(p, "photo.jpg"))
	assert.Equal(t, "", AttachmentURLFor(p, ""))
	assert.Equal(t, "", AttachmentURLFor(p, "missing.jpg"))
}

func TestMapAccessors(t *testing.T) {
	m := Map{
		"child":  map[string]any{"key": "value"},
		"list":   []any{"a", "b"},
		"number": float64(12),
		"flag":   true,
	}

	assert.Equal(t, "value", m.Map("child").String("key"))
	assert.Equal(t, []any{"a", "b"}, m.List("list"))
	assert.Equal(t, "12", m.String("number"))
	assert.Equal(t, "true", m.String("flag"))
	assert.True(t, m.Has("child"))
	assert.False(t, m.Has("missing"))

	t.Run("should tolerate nil maps and wrong types", func(t *testing.T) {
		var nilMap Map
		assert.Nil(t, nilMap.Map("anything"))
		assert.Equal(t, "", nilMap.String("anything"))
		assert.Nil(t, m.Map("list"))
		assert.Nil(t, m.List("child"))
		assert.Equal(t, "", m.String("child"))
	})
}

func TestParseGPS(t *testing.T) {
	t.Run("should parse the full coordinate string", func(t *testing.T) {
		gps := ParseGPS("-1.2921 36.8219 1795.0 4.9")
		require.NotNil(t, gps.Latitude)
		require.NotNil(t, gps.Longitude)
		require.NotNil(t, gps.Altitude)
		assert.InDelta(t, -1.2921, *gps.Latitude, 1e-9)
		assert.InDelta(t, 36.8219, *gps.Longitude, 1e-9)
		assert.InDelta(t, 1795.0, *gps.Altitude, 1e-9)
	})

	t.Run("should parse a partial coordinate string", func(t *testing.T) {
		gps := ParseGPS("-1.2921 36.8219")
		assert.NotNil(t, gps.Latitude)
		assert.NotNil(t, gps.Longitude)
		assert.Nil(t, gps.Altitude)
	})

	t.Run("should degrade to nil on garbage", func(t *testing.T) {
		gps := ParseGPS("not a gps")
		assert.Nil(t, gps.Latitude)
		assert.Nil(t, gps.Longitude)
		assert.Nil(t, gps.Altitude)
	})

	t.Run("should return empty for blank input", func(t *testing.T) {
		assert.Equal(t, GPS{}, ParseGPS("  "))
	})
}

func TestSplitMultiselect(t *testing.T) {
	assert.Equal(t, []string{"1", "3", "7"}, SplitMultiselect(" 1 3  7 "))
	assert.Empty(t, SplitMultiselect(""))
}

func TestParseDate(t *testing.T) {
	d := ParseDate("2025-06-14")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), *d)

	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("14/06/2025"))
}

func TestParseIntPtr(t *testing.T) {
	n := ParseIntPtr("12")
	require.NotNil(t, n)
	assert.Equal(t, 12, *n)

	t.Run("should tolerate float renderings", func(t *testing.T) {
		n := ParseIntPtr("12.0")
		require.NotNil(t, n)
		assert.Equal(t, 12, *n)
	})

	assert.Nil(t, ParseIntPtr(""))
	assert.Nil(t, ParseIntPtr("many"))
}

func TestParseYesNo(t *testing.T) {
	yes := ParseYesNo("1")
	require.NotNil(t, yes)
	assert.True(t, *yes)

	no := ParseYesNo("0")
	require.NotNil(t, no)
	assert.False(t, *no)

	assert.Nil(t, ParseYesNo(""))
	assert.Nil(t, ParseYesNo("maybe"))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "text", Stringify("text"))
	assert.Equal(t, "3.5", Stringify(float64(3.5)))
	assert.Equal(t, "40", Stringify(float64(40)))
	assert.Equal(t, "false", Stringify(false))
	assert.Equal(t, "", Stringify(map[string]any{}))
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	s := StringPtr("value")
	require.NotNil(t, s)
	assert.Equal(t, "value", *s)
}
