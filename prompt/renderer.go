// Copyright 2025 RobotU AI
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package prompt

import (
	"strconv"
	"strings"

	"github.com/Robotu-ai/robotu-molkit/core"
)

// NotAvailable is substituted for optional placeholders whose datum is
// missing from the record. Templates instruct the model that an "n.a."
// value must not be invented.
const NotAvailable = "n.a."

// Render fills the template's placeholders from the record and returns
// the finished prompt. Rendering is a pure function of its inputs: the
// template and record are never mutated, and rendering the same pair
// twice yields identical output.
//
// Required placeholders (name, cid, hazard, solubility, spectra) must
// resolve to non-empty values; optional ones (tag, peak, logp, pka)
// fall back to "n.a.". A placeholder outside either set is a
// RenderError.
func Render(t *Template, record *core.MoleculeRecord) (string, error) {
	values := placeholderValues(record)

	var renderErr error
	out := placeholderPattern.ReplaceAllStringFunc(t.Text, func(match string) string {
		if renderErr != nil {
			return match
		}
		name := match[1 : len(match)-1]
		value, known := values[name]
		if !known {
			renderErr = &RenderError{
				Category:    string(t.Category),
				Placeholder: name,
				Reason:      "unknown placeholder",
			}
			return match
		}
		if value == "" {
			renderErr = &RenderError{
				Category:    string(t.Category),
				Placeholder: name,
				Reason:      "required value missing from record",
			}
			return match
		}
		return value
	})
	if renderErr != nil {
		return "", renderErr
	}
	return out, nil
}

// placeholderValues builds the substitution map. Required placeholders
// map to their record value as-is (possibly empty, caught by Render);
// optional placeholders are defaulted to NotAvailable here.
func placeholderValues(record *core.MoleculeRecord) map[string]string {
	values := map[string]string{
		"name":       record.DisplayName(),
		"cid":        record.CID.String(),
		"hazard":     record.Tags.Hazard,
		"solubility": record.Tags.Solubility,
		"spectra":    record.Tags.Spectra,
		"tag":        NotAvailable,
		"peak":       NotAvailable,
		"logp":       NotAvailable,
		"pka":        NotAvailable,
	}
	if len(record.Tags.Categories) > 0 {
		parts := make([]string, len(record.Tags.Categories))
		for i, c := range record.Tags.Categories {
			parts[i] = string(c)
		}
		values["tag"] = strings.Join(parts, ", ")
	}
	if record.Spectra.NotablePeak != "" {
		values["peak"] = record.Spectra.NotablePeak
	}
	if record.Solubility.LogP != nil {
		values["logp"] = formatFloat(*record.Solubility.LogP)
	}
	if len(record.Solubility.PKa) > 0 {
		parts := make([]string, len(record.Solubility.PKa))
		for i, v := range record.Solubility.PKa {
			parts[i] = formatFloat(v)
		}
		values["pka"] = strings.Join(parts, ", ")
	}
	return values
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
