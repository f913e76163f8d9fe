/*
Package domain contains the core domain models of the flowguard validation engine.

It defines the entities an automation flow is made of (Nodes, Edges, the Flow aggregate),
the typed Block view used by the validation passes, and the report values the engine
produces (Issue, Result). This package is kept pure and free of I/O, following the
Hexagonal Architecture principles of the rest of the module.

# Key Entities

  - Node: A step in the flow as submitted by the editor (kind tag + free-form payload).
  - Edge: A directed connection between two nodes.
  - Block: The normalized, typed view of a Node (one Go type per node kind).
  - Issue: A single validation finding with severity, kind and remediation hint.
  - Result: The assembled report (errors, warnings, infos and the IsValid flag).
*/
package domain
