// Package logx configures postpilot's structured logging.
//
// It is a small wrapper (logx.Logger) on top of zerolog that keeps:
//   - Console output readable (short timestamp + short caller)
//   - File output JSON-structured
//   - An optional ops-channel sink (min-level + rate limiting), used to
//     mirror warnings into a Telegram group
package logx
