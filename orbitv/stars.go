package orbitv

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hazyhaar/orbitx/physics"
)

// starsFieldCount is the number of comma-separated fields per body line.
const starsFieldCount = 7

// parseStars reads a STARSr catalog: one `name,mass,radius,x,y,vx,vy` line
// per celestial body, `#` comments and blank lines skipped. Body order is
// preserved, it is what the record's entity indexes count against.
func parseStars(path string) ([]physics.Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var bodies []physics.Entity
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != starsFieldCount {
			return nil, fmt.Errorf("line %d: %d fields, want %d", lineNo, len(fields), starsFieldCount)
		}

		name := strings.TrimSpace(fields[0])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty body name", lineNo)
		}

		nums := make([]float64, starsFieldCount-1)
		for i, raw := range fields[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d field %d: %v", lineNo, i+2, err)
			}
			nums[i] = v
		}

		bodies = append(bodies, physics.Entity{
			Name: name,
			Mass: nums[0],
			R:    nums[1],
			X:    nums[2],
			Y:    nums[3],
			VX:   nums[4],
			VY:   nums[5],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return bodies, nil
}
