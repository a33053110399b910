// Package repository define los tipos de dominio y las interfaces de acceso a datos.
//
// Las interfaces son contratos de negocio independientes del almacenamiento.
// Las implementaciones viven en internal/store/adapters/ (pg, memory).
//
// Convenciones:
//   - Context siempre es el primer parámetro.
//   - Toda lectura/escritura de datos de negocio recibe ownerID explícito y lo
//     incluye en el mismo predicado de la query. Nunca se filtra solo por id.
//   - Errores de dominio están en errors.go.
package repository
