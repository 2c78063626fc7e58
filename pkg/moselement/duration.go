// SPDX-License-Identifier: Apache-2.0

package moselement

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/beevik/etree"

	"github.com/bbc/mosromgr-sub000/pkg/mosxml"
)

// storyDuration sums the timing fields in the story's metadata payload. An
// explicit StoryDuration wins; otherwise TextTime and MediaTime are added,
// with a missing one counting as zero. Returns false when the payload
// carries no timing at all.
func storyDuration(story *etree.Element) (float64, bool) {
	payload := story.FindElement("mosExternalMetadata/mosPayload")
	if payload == nil {
		return 0, false
	}
	if v, ok := payloadFloat(payload, "StoryDuration"); ok {
		return v, true
	}
	text, textOK := payloadFloat(payload, "TextTime")
	media, mediaOK := payloadFloat(payload, "MediaTime")
	if !textOK && !mediaOK {
		return 0, false
	}
	return text + media, true
}

// storyOffsets walks stories in running order, accumulating durations into a
// map of story ID tail segment to offset seconds.
func storyOffsets(allStories []*etree.Element) map[string]float64 {
	if len(allStories) == 0 {
		return nil
	}
	offsets := make(map[string]float64, len(allStories))
	var t float64
	for _, story := range allStories {
		id := mosxml.ChildText(story, "storyID")
		if id != "" {
			offsets[mosxml.LastIDSegment(id)] = t
		}
		if d, ok := storyDuration(story); ok {
			t += d
		}
	}
	return offsets
}

func payloadFloat(payload *etree.Element, tag string) (float64, bool) {
	el := payload.SelectElement(tag)
	if el == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(el.Text()), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// payloadTime parses a free-form timestamp field from the story's metadata
// payload.
func payloadTime(story *etree.Element, tag string) (time.Time, bool) {
	el := story.FindElement("mosExternalMetadata/mosPayload/" + tag)
	if el == nil {
		return time.Time{}, false
	}
	return ParseTime(el.Text())
}

// ParseTime parses a timestamp in whatever layout the NCS emitted.
func ParseTime(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(text)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
