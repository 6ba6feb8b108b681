// Package inventory reads Ansible INI inventories.
package inventory

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Header returns the literal header line for a group, e.g. "[windows_cluster_nodes]".
func Header(section string) string {
	return "[" + section + "]"
}

// IsHeader reports whether a trimmed line is a bracketed section header.
func IsHeader(line string) bool {
	return strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]")
}

// SectionHosts returns the host lines under the named section.
//
// A header line turns the section on only when it is exactly the target header.
// Inside the section, blank lines and "#" comments are skipped, and a line holding
// both "[" and "]" closes the section without being counted. Hosts from repeated
// occurrences of the header accumulate in file order.
func SectionHosts(r io.Reader, section string) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	return SectionHostsFromBytes(raw, section)
}

// SectionHostsFromBytes is SectionHosts over an in-memory inventory.
func SectionHostsFromBytes(raw []byte, section string) ([]string, error) {
	target := Header(section)
	sc := bufio.NewScanner(bytes.NewReader(raw))
	// the whole input fits, so no line is ever too long
	sc.Buffer(make([]byte, 0, 4096), len(raw)+1)
	sc.Split(scanLines)

	var hosts []string
	inSection := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if IsHeader(line) {
			inSection = line == target
			continue
		}
		if !inSection || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "[") && strings.Contains(line, "]") {
			inSection = false
			continue
		}
		hosts = append(hosts, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan inventory: %w", err)
	}
	return hosts, nil
}

// scanLines is a bufio.SplitFunc that ends a line at "\n", "\r\n" or a lone "\r".
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// need one more byte to tell "\r" from "\r\n"
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// HostName returns the inventory hostname of a host line, dropping inline vars
// such as "ansible_host=10.0.0.11".
func HostName(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
