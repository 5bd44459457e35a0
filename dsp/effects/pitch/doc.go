// Package pitch provides a real-time granular pitch shifter.
package pitch
