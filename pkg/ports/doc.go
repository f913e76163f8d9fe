/*
Package ports defines the driven ports (interfaces) around the validation engine.

These interfaces decouple the activation workflow from external implementations, allowing
flows to come from various storage backends (files, Loam repositories, Redis, memory).

# Key Interfaces

  - FlowLoader: Responsible for loading Flow definitions by ID.
  - FlowStore: A FlowLoader that also persists flows and their activation status.
  - ReportStore: Responsible for persisting validation reports.
  - Locker: Provides distributed locking so concurrent publishes of one flow are serialized.
*/
package ports
