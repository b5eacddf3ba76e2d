/*
Package ports defines the driven ports (interfaces) of the kinetree services.

These interfaces decouple rendering from storage so that the CLI, the HTTP
service and the MCP server can keep rendered robots in memory, Redis, SQLite
or S3 interchangeably.

# Key Interfaces

  - DocumentStore: persists rendered URDF documents by robot name.
  - DistributedLocker: serializes writers of one robot across service replicas.
*/
package ports
